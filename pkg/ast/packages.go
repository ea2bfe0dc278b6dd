package ast

import (
	"fmt"

	"mercator-hq/astral/pkg/asterrors"
)

// AliasExpr binds an imported name to a local alias. Asname may be empty.
type AliasExpr struct {
	BaseNode
	exprMarker
	Name   string
	Asname string
}

// NewAliasExpr creates an import alias.
func NewAliasExpr(name, asname string, loc ...SourceLocation) *AliasExpr {
	return &AliasExpr{
		BaseNode: newBase(KindAliasExpr, optLoc(loc)),
		Name:     name,
		Asname:   asname,
	}
}

func (n *AliasExpr) String() string {
	if n.Asname != "" {
		return fmt.Sprintf("AliasExpr[%s as %s]", n.Name, n.Asname)
	}
	return fmt.Sprintf("AliasExpr[%s]", n.Name)
}

// GetStruct returns the structural representation of the node.
func (n *AliasExpr) GetStruct(simplified bool) ReprStruct {
	value := NewDict().Set("name", n.Name)
	if n.Asname != "" {
		value.Set("asname", n.Asname)
	}
	return n.prepareStruct(fmt.Sprintf("ALIAS[%s]", n.Name), value, simplified)
}

func (n *AliasExpr) accept(v Visitor) (string, error) { return v.VisitAliasExpr(n) }

// ImportStmt imports one or more modules by name.
type ImportStmt struct {
	BaseNode
	stmtMarker
	Names []*AliasExpr
}

// NewImportStmt creates an import statement. At least one name is required.
func NewImportStmt(names []*AliasExpr, loc ...SourceLocation) (*ImportStmt, error) {
	if len(names) == 0 {
		return nil, asterrors.New(asterrors.KindSyntax,
			"import statement requires at least one name")
	}
	n := &ImportStmt{BaseNode: newBase(KindImportStmt, optLoc(loc)), Names: names}
	for _, a := range names {
		a.SetParent(n)
	}
	return n, nil
}

func (n *ImportStmt) String() string { return "ImportStmt" }

// GetStruct returns the structural representation of the node.
func (n *ImportStmt) GetStruct(simplified bool) ReprStruct {
	names := make([]ReprStruct, 0, len(n.Names))
	for _, a := range n.Names {
		names = append(names, a.GetStruct(simplified))
	}
	value := NewDict().Set("names", names)
	return n.prepareStruct("IMPORT-STMT", value, simplified)
}

func (n *ImportStmt) accept(v Visitor) (string, error) { return v.VisitImportStmt(n) }

// ImportFromStmt imports names from a module. Level counts leading dots for
// relative imports.
type ImportFromStmt struct {
	BaseNode
	stmtMarker
	Module string
	Names  []*AliasExpr
	Level  int
}

// NewImportFromStmt creates a from-import statement. At least one name is
// required and the relative level must be non-negative.
func NewImportFromStmt(module string, names []*AliasExpr, level int, loc ...SourceLocation) (*ImportFromStmt, error) {
	if len(names) == 0 {
		return nil, asterrors.New(asterrors.KindSyntax,
			"from-import statement requires at least one name")
	}
	if level < 0 {
		return nil, asterrors.Newf(asterrors.KindValue,
			"relative import level must be non-negative, got %d", level)
	}
	n := &ImportFromStmt{
		BaseNode: newBase(KindImportFromStmt, optLoc(loc)),
		Module:   module,
		Names:    names,
		Level:    level,
	}
	for _, a := range names {
		a.SetParent(n)
	}
	return n, nil
}

func (n *ImportFromStmt) String() string {
	return fmt.Sprintf("ImportFromStmt[%s]", n.Module)
}

// GetStruct returns the structural representation of the node.
func (n *ImportFromStmt) GetStruct(simplified bool) ReprStruct {
	names := make([]ReprStruct, 0, len(n.Names))
	for _, a := range n.Names {
		names = append(names, a.GetStruct(simplified))
	}
	value := NewDict().
		Set("module", n.Module).
		Set("names", names).
		Set("level", n.Level)
	return n.prepareStruct(fmt.Sprintf("IMPORT-FROM[%s]", n.Module), value, simplified)
}

func (n *ImportFromStmt) accept(v Visitor) (string, error) {
	return v.VisitImportFromStmt(n)
}

// Module is a named compilation unit holding a top-level block.
type Module struct {
	BaseNode
	stmtMarker
	Name string
	Body *Block
}

// NewModule creates an empty module.
func NewModule(name string, loc ...SourceLocation) *Module {
	body := NewBlock(name)
	n := &Module{BaseNode: newBase(KindModule, optLoc(loc)), Name: name, Body: body}
	body.SetParent(n)
	return n
}

// Append adds nodes to the module body and returns the updated body length.
func (n *Module) Append(nodes ...AST) int {
	return n.Body.Append(nodes...)
}

func (n *Module) String() string { return fmt.Sprintf("Module[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *Module) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("name", n.Name).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct(fmt.Sprintf("MODULE[%s]", n.Name), value, simplified)
}

func (n *Module) accept(v Visitor) (string, error) { return v.VisitModule(n) }

// Package groups modules and nested packages under a name.
type Package struct {
	BaseNode
	stmtMarker
	Name     string
	Modules  []*Module
	Packages []*Package
}

// NewPackage creates an empty package.
func NewPackage(name string, loc ...SourceLocation) *Package {
	return &Package{BaseNode: newBase(KindPackage, optLoc(loc)), Name: name}
}

// AddModule adds a module to the package.
func (n *Package) AddModule(m *Module) *Package {
	m.SetParent(n)
	n.Modules = append(n.Modules, m)
	return n
}

// AddPackage nests a package inside this one.
func (n *Package) AddPackage(p *Package) *Package {
	p.SetParent(n)
	n.Packages = append(n.Packages, p)
	return n
}

func (n *Package) String() string { return fmt.Sprintf("Package[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *Package) GetStruct(simplified bool) ReprStruct {
	modules := make([]ReprStruct, 0, len(n.Modules))
	for _, m := range n.Modules {
		modules = append(modules, m.GetStruct(simplified))
	}
	packages := make([]ReprStruct, 0, len(n.Packages))
	for _, p := range n.Packages {
		packages = append(packages, p.GetStruct(simplified))
	}
	value := NewDict().
		Set("name", n.Name).
		Set("modules", modules).
		Set("packages", packages)
	return n.prepareStruct(fmt.Sprintf("PACKAGE[%s]", n.Name), value, simplified)
}

func (n *Package) accept(v Visitor) (string, error) { return v.VisitPackage(n) }

// Target identifies the build target a program is compiled for.
type Target struct {
	BaseNode
	exprMarker
	DataLayout string
	Triple     string
}

// NewTarget creates a build target descriptor.
func NewTarget(datalayout, triple string, loc ...SourceLocation) *Target {
	return &Target{
		BaseNode:   newBase(KindTarget, optLoc(loc)),
		DataLayout: datalayout,
		Triple:     triple,
	}
}

func (n *Target) String() string { return fmt.Sprintf("Target[%s]", n.Triple) }

// GetStruct returns the structural representation of the node.
func (n *Target) GetStruct(simplified bool) ReprStruct {
	value := NewDict().
		Set("datalayout", n.DataLayout).
		Set("triple", n.Triple)
	return n.prepareStruct(fmt.Sprintf("TARGET[%s]", n.Triple), value, simplified)
}

func (n *Target) accept(v Visitor) (string, error) { return v.VisitTarget(n) }

// Program is the root of a tree: a named package set with a build target.
type Program struct {
	BaseNode
	stmtMarker
	Name     string
	Target   *Target
	Packages []*Package
	Body     *Block
}

// NewProgram creates an empty program. Target may be nil.
func NewProgram(name string, target *Target, loc ...SourceLocation) *Program {
	body := NewBlock(name)
	n := &Program{
		BaseNode: newBase(KindProgram, optLoc(loc)),
		Name:     name,
		Target:   target,
		Body:     body,
	}
	if target != nil {
		target.SetParent(n)
	}
	body.SetParent(n)
	return n
}

// AddPackage adds a package to the program.
func (n *Program) AddPackage(p *Package) *Program {
	p.SetParent(n)
	n.Packages = append(n.Packages, p)
	return n
}

// Append adds top-level nodes to the program body and returns the updated
// body length.
func (n *Program) Append(nodes ...AST) int {
	return n.Body.Append(nodes...)
}

func (n *Program) String() string { return fmt.Sprintf("Program[%s]", n.Name) }

// GetStruct returns the structural representation of the node.
func (n *Program) GetStruct(simplified bool) ReprStruct {
	value := NewDict().Set("name", n.Name)
	if n.Target != nil {
		value.Set("target", n.Target.GetStruct(simplified))
	}
	packages := make([]ReprStruct, 0, len(n.Packages))
	for _, p := range n.Packages {
		packages = append(packages, p.GetStruct(simplified))
	}
	value.Set("packages", packages).
		Set("body", n.Body.GetStruct(simplified))
	return n.prepareStruct(fmt.Sprintf("PROGRAM[%s]", n.Name), value, simplified)
}

func (n *Program) accept(v Visitor) (string, error) { return v.VisitProgram(n) }
