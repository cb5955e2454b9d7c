package quota

// Resource represents a countable tenant resource type.
type Resource string

// Metered resources of the POS suite. Storage is counted in megabytes.
const (
	ResourceBranches     Resource = "sucursales"
	ResourceUsers        Resource = "usuarios"
	ResourceProducts     Resource = "productos"
	ResourceTransactions Resource = "transacciones_mes"
	ResourceStorage      Resource = "almacenamiento_mb"
)

// Unlimited indicates no limit for a resource (-1 chosen for SQL compatibility).
const Unlimited int64 = -1

// LimitDef couples a resource with its ceiling for a given plan.
type LimitDef struct {
	Resource Resource
	Max      int64 // Unlimited for no ceiling
}

// LimitResult is the derived state of one resource for one tenant. It is
// recomputed on every check and never cached: usage can change between calls.
type LimitResult struct {
	Resource   Resource `json:"resource"`
	Current    int64    `json:"current"`
	Max        int64    `json:"max"`
	Remaining  int64    `json:"remaining"` // Unlimited when Max is Unlimited, clamped at 0 otherwise
	Percentage float64  `json:"percentage"`
	Unlimited  bool     `json:"unlimited"`
	Exceeded   bool     `json:"exceeded"`
}
