package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"avenstudio/internal/app"
	"avenstudio/internal/contract"
	"avenstudio/internal/modules/budget"
	"avenstudio/internal/modules/contacts"
	"avenstudio/internal/modules/materials"
	"avenstudio/internal/modules/milestones"
	"avenstudio/internal/modules/projects"
	"avenstudio/internal/modules/tasks"
	"avenstudio/internal/router"
	"avenstudio/internal/store"
)

func newSeedCmd(a *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a demo project with tasks, budget, milestones, contacts and materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, closeDB, err := a.Open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			rt := router.New(app.Modules(store.New(db), time.Now), router.WithLogger(a.Log))
			id, err := Seed(cmd.Context(), rt, name)
			if err != nil {
				return err
			}
			cmd.Printf("seeded project %q (%s)\n", name, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "project", "Demo Self-Build", "Name of the demo project")
	return cmd
}

func strp(s string) *string   { return &s }
func f64p(v float64) *float64 { return &v }

// Seed creates a demo project through the module dispatcher and returns its
// id.
func Seed(ctx context.Context, d contract.Dispatcher, name string) (string, error) {
	do := func(req contract.Request) (any, error) {
		resp := d.Dispatch(ctx, req)
		if !resp.Success {
			return nil, fmt.Errorf("seed %s: %s", req.Route(), resp.Error)
		}
		return resp.Data, nil
	}
	idOf := func(v any) string {
		rec, _ := v.(store.Record)
		return rec.String("id")
	}

	p, err := do(projects.CreateRequest{
		Name:             name,
		Location:         "Shropshire",
		StartDate:        strp("2026-03-01"),
		TargetCompletion: strp("2027-09-30"),
		BudgetTotal:      f64p(420000),
		Description:      "Two-storey timber frame self-build",
	})
	if err != nil {
		return "", err
	}
	pid := idOf(p)

	for _, t := range []tasks.CreateRequest{
		{Title: "Appoint architect", Category: "planning", Phase: strp("pre-planning"), Priority: "high"},
		{Title: "Submit planning application", Category: "planning", Phase: strp("planning-application"), DueDate: strp("2026-06-30")},
		{Title: "Soil investigation", Category: "groundworks", Phase: strp("groundworks"), EstimatedHours: f64p(16)},
		{Title: "Order timber frame", Category: "structure", Phase: strp("superstructure"), Priority: "urgent"},
	} {
		t.ProjectID = pid
		if _, err := do(t); err != nil {
			return "", err
		}
	}

	for _, b := range []budget.CreateRequest{
		{Category: "professional-fees", ItemName: "Architect fees", EstimatedCost: f64p(18000), ActualCost: f64p(17500)},
		{Category: "groundworks", ItemName: "Foundations", EstimatedCost: f64p(32000)},
		{Category: "structure", ItemName: "Timber frame kit", EstimatedCost: f64p(95000), Supplier: "Frame Co"},
	} {
		b.ProjectID = pid
		if _, err := do(b); err != nil {
			return "", err
		}
	}

	for _, m := range []milestones.CreateRequest{
		{Name: "Planning approved", Phase: "planning-application", TargetDate: "2026-08-31"},
		{Name: "Wind and watertight", Phase: "external-envelope", TargetDate: "2027-02-28"},
	} {
		m.ProjectID = pid
		if _, err := do(m); err != nil {
			return "", err
		}
	}

	supplier, err := do(contacts.CreateRequest{
		ProjectID: pid,
		Name:      "Frame Co",
		Role:      "supplier",
		Email:     "orders@frameco.example",
	})
	if err != nil {
		return "", err
	}

	for _, m := range []materials.CreateRequest{
		{ItemName: "Timber frame kit", Quantity: f64p(1), Unit: "units", Cost: 95000, LeadTimeDays: 84, DeliveryDate: "2026-11-15"},
		{ItemName: "Roof slates", Quantity: f64p(140), Unit: "m²", Cost: 6300, LeadTimeDays: 28},
	} {
		m.ProjectID = pid
		m.SupplierID = strp(idOf(supplier))
		if _, err := do(m); err != nil {
			return "", err
		}
	}

	return pid, nil
}
