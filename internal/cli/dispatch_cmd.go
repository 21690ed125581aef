package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"avenstudio/internal/app"
	"avenstudio/internal/contract"
	"avenstudio/internal/router"
	"avenstudio/internal/store"
)

func newDispatchCmd(a *App) *cobra.Command {
	var (
		module  string
		action  string
		id      string
		data    string
		filters map[string]string
	)

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Send one request to a module and print the envelope",
		Example: `  avenctl dispatch --module tasks --action list --filter status=todo,priority=high
  avenctl dispatch --module projects --action create --data '{"name":"Barn"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := contract.RawRequest{Module: module, Action: action, ID: id}
			if data != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("--data is not valid JSON")
				}
				raw.Data = json.RawMessage(data)
			}
			if len(filters) > 0 {
				raw.Filters = make(map[string]any, len(filters))
				for k, v := range filters {
					raw.Filters[k] = v
				}
			}

			db, closeDB, err := a.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			rt := router.New(app.Modules(store.New(db), time.Now), router.WithLogger(a.Log))
			resp := rt.HandleRequest(cmd.Context(), raw)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("%s.%s failed: %s", module, action, resp.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&module, "module", "", "Module name")
	cmd.Flags().StringVar(&action, "action", "", "Action name")
	cmd.Flags().StringVar(&id, "id", "", "Record id")
	cmd.Flags().StringVar(&data, "data", "", "JSON payload")
	cmd.Flags().StringToStringVar(&filters, "filter", nil, "Filter as key=value (repeatable or comma separated)")
	_ = cmd.MarkFlagRequired("module")
	_ = cmd.MarkFlagRequired("action")
	return cmd
}
