// # internal/engine/analyze/usage.go
package analyze

// UsageIndex is the per-file index built during the single traversal:
// every recorded declaration plus, for every name seen in type position,
// an occurrence count and the ordered occurrence list. It lives for one
// file's analysis and is discarded afterwards.
type UsageIndex struct {
	decls  map[string]TypeDeclaration
	counts map[string]int
	refs   map[string][]TypeReference
	order  []string
}

func NewUsageIndex() *UsageIndex {
	return &UsageIndex{
		decls:  make(map[string]TypeDeclaration),
		counts: make(map[string]int),
		refs:   make(map[string][]TypeReference),
	}
}

// Record stores a declaration under its name. Duplicate names overwrite
// silently (last declaration wins); the usage entry is zero-initialized so
// declared-but-unreferenced names are tracked as count 0.
func (u *UsageIndex) Record(decl TypeDeclaration) {
	if _, seen := u.decls[decl.Name]; !seen {
		u.order = append(u.order, decl.Name)
	}
	u.decls[decl.Name] = decl
	if _, ok := u.counts[decl.Name]; !ok {
		u.counts[decl.Name] = 0
	}
}

// AddReference appends one occurrence and bumps the counter. Count and
// list length stay equal by construction; nothing else mutates either.
func (u *UsageIndex) AddReference(ref TypeReference) {
	u.counts[ref.Name]++
	u.refs[ref.Name] = append(u.refs[ref.Name], ref)
}

// Declarations returns recorded declarations in first-recorded name order,
// which follows source order for non-shadowed names.
func (u *UsageIndex) Declarations() []TypeDeclaration {
	out := make([]TypeDeclaration, 0, len(u.order))
	for _, name := range u.order {
		out = append(out, u.decls[name])
	}
	return out
}

// Count returns how many times name occurred in type position.
func (u *UsageIndex) Count(name string) int { return u.counts[name] }

// References returns the ordered occurrence list for name.
func (u *UsageIndex) References(name string) []TypeReference { return u.refs[name] }
