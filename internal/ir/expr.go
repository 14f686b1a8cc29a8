package ir

// Expr is the closed sum type over IR expressions. Every concrete variant
// below implements isExpr via an unexported marker method, the same
// exhaustive-variant discipline the teacher's AST uses for its Expr/Stmt
// interfaces.
type Expr interface {
	isExpr()
}

// Literal is a constant of a known kind.
type Literal struct {
	Value Value
}

func (*Literal) isExpr() {}

func Lit(k Kind, v int64) *Literal { return &Literal{Value: Value{Raw: Wrap(v, k), Kind: k}} }

// VarRef reads a named variable.
type VarRef struct {
	Name string
}

func (*VarRef) isExpr() {}

func Var(name string) *VarRef { return &VarRef{Name: name} }

// Binary applies one of the 18 binary operators.
type Binary struct {
	Op    BinOp
	Left  Expr
	Right Expr
}

func (*Binary) isExpr() {}

func Bin(op BinOp, l, r Expr) *Binary { return &Binary{Op: op, Left: l, Right: r} }

// Unary applies NEG, NOT, or BNOT.
type Unary struct {
	Op      UnaryOp
	Operand Expr
}

func (*Unary) isExpr() {}

func Un(op UnaryOp, v Expr) *Unary { return &Unary{Op: op, Operand: v} }

// Ternary is cond ? then : else.
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (*Ternary) isExpr() {}

// Call invokes a named function (user-defined or target builtin) by name.
type Call struct {
	Name string
	Args []Expr
}

func (*Call) isExpr() {}

func CallExpr(name string, args ...Expr) *Call { return &Call{Name: name, Args: args} }

// ArrayAccess reads array[index].
type ArrayAccess struct {
	Array string
	Index Expr
}

func (*ArrayAccess) isExpr() {}

// DomainExpr is the opaque carrier for the "large family" of domain
// expressions (pool active-count, camera X/Y, transition-active,
// save-field-read, path-found, mixer-group-volume, etc). The generic
// evaluator treats it as opaque; only the category handler that owns
// Category interprets Op/Target/Args/Scalars.
type DomainExpr struct {
	Category string
	Op       string
	Target   string // sprite/pool/camera/save-schema/path/mixer-group name, when applicable
	Args     []Expr
	Scalars  map[string]any
}

func (*DomainExpr) isExpr() {}

func Domain(category, op, target string, args ...Expr) *DomainExpr {
	return &DomainExpr{Category: category, Op: op, Target: target, Args: args}
}

// Convenience constructors for the domain expressions named in spec §3.
func PoolActiveCount(pool string) *DomainExpr   { return Domain("pool", "active_count", pool) }
func CameraX() *DomainExpr                      { return Domain("camera", "x", "") }
func CameraY() *DomainExpr                      { return Domain("camera", "y", "") }
func TransitionActive() *DomainExpr             { return Domain("transition", "active", "") }
func SaveFieldRead(schema, field string) *DomainExpr {
	d := Domain("save", "field_read", schema)
	d.Scalars = map[string]any{"field": field}
	return d
}
func PathFoundExpr(path string) *DomainExpr        { return Domain("path", "found", path) }
func MixerGroupVolume(group string) *DomainExpr    { return Domain("mixer", "group_volume", group) }
