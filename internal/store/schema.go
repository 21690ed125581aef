package store

import (
	"fmt"
	"strings"
)

// Kind is the semantic type of a column. The storage engine only ever sees
// text, integers and reals; Kind decides how values cross that boundary.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindReal
	KindBool
	KindList
	KindMap
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindTime:
		return "time"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Structured reports whether values of this kind are stored as JSON text.
func (k Kind) Structured() bool { return k == KindList || k == KindMap }

func (k Kind) sqlType() string {
	switch k {
	case KindInt, KindBool:
		return "INTEGER"
	case KindReal:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// Column describes one stored field.
type Column struct {
	Name       string
	Kind       Kind
	NotNull    bool
	Default    string // SQL literal
	Check      string
	References string // e.g. "projects(id) ON DELETE CASCADE"
}

// Table is the single declaration a table is created, encoded and decoded from.
type Table struct {
	Name    string
	Key     string
	Columns []Column

	index map[string]int
}

func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.Columns[i], true
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) ddl() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n", quote(t.Name))
	for i, c := range t.Columns {
		fmt.Fprintf(&b, "\t%s %s", quote(c.Name), c.Kind.sqlType())
		if c.Name == t.Key {
			b.WriteString(" PRIMARY KEY")
		} else if c.NotNull {
			b.WriteString(" NOT NULL")
		}
		if c.Default != "" {
			b.WriteString(" DEFAULT " + c.Default)
		}
		if c.Check != "" {
			b.WriteString(" CHECK (" + c.Check + ")")
		}
		if c.References != "" {
			b.WriteString(" REFERENCES " + c.References)
		}
		if i < len(t.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

func quote(ident string) string { return `"` + ident + `"` }

func oneOf(column string, values ...string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return fmt.Sprintf("%s IN (%s)", quote(column), strings.Join(quoted, ", "))
}

// Table names.
const (
	Projects        = "projects"
	Tasks           = "tasks"
	BudgetItems     = "budget_items"
	Documents       = "documents"
	Contacts        = "contacts"
	Milestones      = "milestones"
	Materials       = "materials"
	Categories      = "categories"
	AutomationRules = "automation_rules"
)

const (
	DefaultProjectID   = "default-project"
	DefaultProjectName = "My Self-Build Project"
	FallbackCategory   = "other"
)

// DefaultCategories are seeded on first initialisation.
var DefaultCategories = []string{
	"planning", "groundworks", "structure", "first-fix",
	"second-fix", "finishes", "external", FallbackCategory,
}

// Enumerations enforced by CHECK constraints.
var (
	ProjectTypes     = []string{"self-build", "custom-build", "renovation"}
	ProjectStatuses  = []string{"planning", "in-progress", "on-hold", "completed", "archived"}
	TaskStatuses     = []string{"todo", "in-progress", "review", "blocked", "done"}
	TaskPriorities   = []string{"low", "medium", "high", "urgent"}
	BudgetStatuses   = []string{"estimated", "quoted", "approved", "ordered", "paid"}
	DocumentTypes    = []string{"planning", "building_regs", "certificate", "drawing", "contract", "invoice", "photo", "sap", "warranty", "insurance", "other"}
	MilestoneStatus  = []string{"pending", "in-progress", "completed", "delayed", "cancelled"}
	DeliveryStatuses = []string{"not-ordered", "ordered", "in-transit", "delivered", "overdue"}
)

const cascadeProject = "projects(id) ON DELETE CASCADE"

func timestamps() []Column {
	return []Column{
		{Name: "created_at", Kind: KindTime},
		{Name: "updated_at", Kind: KindTime},
	}
}

func build(t Table) *Table {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c.Name] = i
	}
	if t.Key == "" {
		t.Key = "id"
	}
	return &t
}

// tables is ordered so that referenced tables are created first.
var tables = []*Table{
	build(Table{Name: Projects, Columns: append([]Column{
		{Name: "id", Kind: KindText},
		{Name: "name", Kind: KindText, NotNull: true},
		{Name: "location", Kind: KindText},
		{Name: "project_type", Kind: KindText, Default: "'self-build'", Check: oneOf("project_type", ProjectTypes...)},
		{Name: "start_date", Kind: KindText},
		{Name: "target_completion", Kind: KindText},
		{Name: "status", Kind: KindText, Default: "'planning'", Check: oneOf("status", ProjectStatuses...)},
		{Name: "budget_total", Kind: KindReal},
		{Name: "description", Kind: KindText, Default: "''"},
	}, timestamps()...)}),
	build(Table{Name: Tasks, Columns: append([]Column{
		{Name: "id", Kind: KindText},
		{Name: "project_id", Kind: KindText, NotNull: true, Default: "'" + DefaultProjectID + "'", References: cascadeProject},
		{Name: "title", Kind: KindText, NotNull: true},
		{Name: "description", Kind: KindText, Default: "''"},
		{Name: "status", Kind: KindText, Default: "'todo'", Check: oneOf("status", TaskStatuses...)},
		{Name: "priority", Kind: KindText, Default: "'medium'", Check: oneOf("priority", TaskPriorities...)},
		{Name: "category", Kind: KindText, NotNull: true},
		{Name: "phase", Kind: KindText},
		{Name: "tags", Kind: KindList, Default: "'[]'"},
		{Name: "due_date", Kind: KindText},
		{Name: "start_date", Kind: KindText},
		{Name: "assigned_to", Kind: KindText},
		{Name: "created_by", Kind: KindText},
		{Name: "estimated_hours", Kind: KindReal},
		{Name: "completion_percentage", Kind: KindInt, Default: "0", Check: `"completion_percentage" BETWEEN 0 AND 100`},
		{Name: "blocked_by", Kind: KindList, Default: "'[]'"},
		{Name: "comments", Kind: KindList, Default: "'[]'"},
		{Name: "attachments", Kind: KindList, Default: "'[]'"},
		{Name: "checklist", Kind: KindList, Default: "'[]'"},
		{Name: "subtasks", Kind: KindList, Default: "'[]'"},
		{Name: "custom_fields", Kind: KindMap, Default: "'{}'"},
	}, timestamps()...)}),
	build(Table{Name: BudgetItems, Columns: append([]Column{
		{Name: "id", Kind: KindText},
		{Name: "project_id", Kind: KindText, NotNull: true, References: cascadeProject},
		{Name: "category", Kind: KindText, NotNull: true},
		{Name: "item_name", Kind: KindText, NotNull: true},
		{Name: "estimated_cost", Kind: KindReal, Default: "0"},
		{Name: "actual_cost", Kind: KindReal, Default: "0"},
		{Name: "supplier", Kind: KindText},
		{Name: "quote_date", Kind: KindText},
		{Name: "status", Kind: KindText, Default: "'estimated'", Check: oneOf("status", BudgetStatuses...)},
		{Name: "notes", Kind: KindText, Default: "''"},
	}, timestamps()...)}),
	build(Table{Name: Contacts, Columns: append([]Column{
		{Name: "id", Kind: KindText},
		{Name: "project_id", Kind: KindText, NotNull: true, References: cascadeProject},
		{Name: "name", Kind: KindText, NotNull: true},
		{Name: "role", Kind: KindText, Default: "'other'"},
		{Name: "company", Kind: KindText},
		{Name: "email", Kind: KindText},
		{Name: "phone", Kind: KindText},
		{Name: "address", Kind: KindText},
		{Name: "notes", Kind: KindList, Default: "'[]'"},
		{Name: "contracts", Kind: KindList, Default: "'[]'"},
		{Name: "performance_rating", Kind: KindInt, Check: `"performance_rating" BETWEEN 1 AND 5`},
	}, timestamps()...)}),
	build(Table{Name: Documents, Columns: append([]Column{
		{Name: "id", Kind: KindText},
		{Name: "project_id", Kind: KindText, NotNull: true, References: cascadeProject},
		{Name: "filename", Kind: KindText, NotNull: true},
		{Name: "file_path", Kind: KindText, NotNull: true},
		{Name: "document_type", Kind: KindText, Default: "'other'", Check: oneOf("document_type", DocumentTypes...)},
		{Name: "version", Kind: KindInt, Default: "1"},
		{Name: "linked_task_id", Kind: KindText, References: "tasks(id) ON DELETE SET NULL"},
		{Name: "linked_phase", Kind: KindText},
		{Name: "upload_date", Kind: KindTime},
		{Name: "tags", Kind: KindList, Default: "'[]'"},
		{Name: "notes", Kind: KindText, Default: "''"},
	}, timestamps()...)}),
	build(Table{Name: Milestones, Columns: append([]Column{
		{Name: "id", Kind: KindText},
		{Name: "project_id", Kind: KindText, NotNull: true, References: cascadeProject},
		{Name: "name", Kind: KindText, NotNull: true},
		{Name: "phase", Kind: KindText},
		{Name: "target_date", Kind: KindText},
		{Name: "actual_date", Kind: KindText},
		{Name: "status", Kind: KindText, Default: "'pending'", Check: oneOf("status", MilestoneStatus...)},
		{Name: "dependencies", Kind: KindList, Default: "'[]'"},
		{Name: "notes", Kind: KindText, Default: "''"},
	}, timestamps()...)}),
	build(Table{Name: Materials, Columns: append([]Column{
		{Name: "id", Kind: KindText},
		{Name: "project_id", Kind: KindText, NotNull: true, References: cascadeProject},
		{Name: "item_name", Kind: KindText, NotNull: true},
		{Name: "quantity", Kind: KindReal},
		{Name: "unit", Kind: KindText, Default: "'units'"},
		{Name: "supplier_id", Kind: KindText, References: "contacts(id) ON DELETE SET NULL"},
		{Name: "cost", Kind: KindReal, Default: "0"},
		{Name: "lead_time_days", Kind: KindInt, Default: "0"},
		{Name: "delivery_date", Kind: KindText},
		{Name: "delivery_status", Kind: KindText, Default: "'not-ordered'", Check: oneOf("delivery_status", DeliveryStatuses...)},
		{Name: "warranty_info", Kind: KindText, Default: "''"},
		{Name: "notes", Kind: KindText, Default: "''"},
	}, timestamps()...)}),
	build(Table{Name: Categories, Key: "name", Columns: []Column{
		{Name: "name", Kind: KindText},
		{Name: "created_at", Kind: KindTime},
	}}),
	build(Table{Name: AutomationRules, Columns: []Column{
		{Name: "id", Kind: KindText},
		{Name: "name", Kind: KindText, NotNull: true},
		{Name: "description", Kind: KindText},
		{Name: "enabled", Kind: KindBool, Default: "1"},
		{Name: "trigger", Kind: KindText, NotNull: true},
		{Name: "conditions", Kind: KindList, NotNull: true, Default: "'[]'"},
		{Name: "actions", Kind: KindList, NotNull: true, Default: "'[]'"},
		{Name: "created_at", Kind: KindTime},
		{Name: "updated_at", Kind: KindTime},
		{Name: "last_triggered", Kind: KindTime},
		{Name: "trigger_count", Kind: KindInt, Default: "0"},
	}}),
}

var byName = func() map[string]*Table {
	m := make(map[string]*Table, len(tables))
	for _, t := range tables {
		m[t.Name] = t
	}
	return m
}()

// Lookup returns the declaration of a table.
func Lookup(name string) (*Table, bool) {
	t, ok := byName[name]
	return t, ok
}

// Tables returns every declared table in creation order.
func Tables() []*Table {
	out := make([]*Table, len(tables))
	copy(out, tables)
	return out
}
