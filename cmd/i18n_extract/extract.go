// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"cmp"
	"go/ast"
	"go/constant"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"

	"codeberg.org/tatoolbox/l10n/core/ts"
)

// templateVersion is the TS format version written by lupdate.
const templateVersion = "2.1"

// key identifies one message of the template.
type key struct {
	context string
	source  string
	comment string
}

// entry collects what is known about one message across all call sites.
type entry struct {
	key
	numerus bool
	refs    []ts.Location
}

// extractor holds the shared state of one run. The type information changes
// per package; the collected entries do not.
type extractor struct {
	entries     map[key]*entry
	projectRoot string
	i18nPkgs    map[string]struct{}

	fset *token.FileSet
	info *types.Info
}

func newExtractor(projectRoot string, i18nPkgs map[string]struct{}) *extractor {
	return &extractor{
		entries:     make(map[key]*entry),
		projectRoot: projectRoot,
		i18nPkgs:    i18nPkgs,
	}
}

// isI18nPackage reports whether pkg is the i18n runtime: a package named i18n
// that defines the string type Scope and the struct type MsgKey.
func isI18nPackage(pkg *types.Package) bool {
	if pkg == nil || pkg.Name() != "i18n" {
		return false
	}

	scope, ok := pkg.Scope().Lookup("Scope").(*types.TypeName)
	if !ok {
		return false
	}

	if basic, ok := scope.Type().Underlying().(*types.Basic); !ok || basic.Kind() != types.String {
		return false
	}

	msgKey, ok := pkg.Scope().Lookup("MsgKey").(*types.TypeName)
	if !ok {
		return false
	}

	_, ok = msgKey.Type().Underlying().(*types.Struct)

	return ok
}

// inspect walks files, recording every translatable message with constant arguments.
func (e *extractor) inspect(fset *token.FileSet, info *types.Info, files []*ast.File) {
	e.fset = fset
	e.info = info

	for _, f := range files {
		ast.Inspect(f, func(n ast.Node) bool {
			switch x := n.(type) {
			case *ast.CallExpr:
				e.handleCallExpr(x)
			case *ast.CompositeLit:
				e.handleCompositeLit(x)
			}

			return true
		})
	}
}

// constString evaluates expr to a constant string if possible using types.Info.
// Handles string literals, const identifiers (typed ones such as Scope
// constants included), and constant expressions like "a" + "b".
func constString(info *types.Info, expr ast.Expr) (string, bool) {
	tv, ok := info.Types[expr]
	if !ok || tv.Value == nil || tv.Value.Kind() != constant.String {
		return "", false
	}

	return constant.StringVal(tv.Value), true
}

// isI18nNamed reports whether t is the named type i18n.<name>, also through
// aliases and one level of pointer.
func (e *extractor) isI18nNamed(t types.Type, name string) bool {
	t = types.Unalias(t)
	if p, ok := t.(*types.Pointer); ok {
		t = types.Unalias(p.Elem())
	}

	named, ok := t.(*types.Named)
	if !ok {
		return false
	}

	obj := named.Obj()
	if obj == nil || obj.Pkg() == nil {
		return false
	}

	if _, ok := e.i18nPkgs[obj.Pkg().Path()]; !ok {
		return false
	}

	return obj.Name() == name
}

// callee returns the function or method called by fun, if it is statically known.
func (e *extractor) callee(fun ast.Expr) *types.Func {
	switch f := fun.(type) {
	case *ast.Ident:
		fn, _ := e.info.Uses[f].(*types.Func)

		return fn
	case *ast.SelectorExpr:
		fn, _ := e.info.Uses[f.Sel].(*types.Func)

		return fn
	}

	return nil
}

// handleCallExpr records the package functions
//
//	Tr(ctx, scope, source, ...)
//	TrD(ctx, scope, source, comment, ...)
//	TrN(ctx, scope, source, n, ...)
//	NewUserError(ctx, scope, source, ...)
//
// and the same calls as methods of a constant Scope, which omit the scope argument.
func (e *extractor) handleCallExpr(x *ast.CallExpr) {
	fn := e.callee(x.Fun)
	if fn == nil || fn.Pkg() == nil {
		return
	}

	if _, ok := e.i18nPkgs[fn.Pkg().Path()]; !ok {
		return
	}

	if recv := fn.Signature().Recv(); recv != nil {
		if !e.isI18nNamed(recv.Type(), "Scope") {
			return
		}

		sel, ok := x.Fun.(*ast.SelectorExpr)
		if !ok || len(x.Args) < 2 {
			return
		}

		if scope, ok := constString(e.info, sel.X); ok {
			e.handleTr(fn.Name(), scope, x.Args[1:])
		}

		return
	}

	if len(x.Args) < 3 {
		return
	}

	if scope, ok := constString(e.info, x.Args[1]); ok {
		e.handleTr(fn.Name(), scope, x.Args[2:])
	}
}

// handleTr records a Tr family call given its arguments after the scope.
func (e *extractor) handleTr(name, scope string, args []ast.Expr) {
	source, ok := constString(e.info, args[0])
	if !ok {
		return
	}

	switch name {
	case "Tr", "NewUserError":
		e.addRef(args[0].Pos(), key{context: scope, source: source}, false)
	case "TrD":
		if len(args) < 2 {
			return
		}

		if comment, ok := constString(e.info, args[1]); ok {
			e.addRef(args[0].Pos(), key{context: scope, source: source, comment: comment}, false)
		}
	case "TrN":
		e.addRef(args[0].Pos(), key{context: scope, source: source}, true)
	}
}

// handleCompositeLit records i18n.MsgKey literals, keyed or positional, also
// as elements of slices and maps where the type is elided.
func (e *extractor) handleCompositeLit(x *ast.CompositeLit) {
	tv, ok := e.info.Types[x]
	if !ok || tv.Type == nil || !e.isI18nNamed(tv.Type, "MsgKey") {
		return
	}

	st, ok := tv.Type.Underlying().(*types.Struct)
	if !ok {
		return
	}

	fields := make(map[string]ast.Expr, len(x.Elts))

	for i, elt := range x.Elts {
		if kv, ok := elt.(*ast.KeyValueExpr); ok {
			if id, ok := kv.Key.(*ast.Ident); ok {
				fields[id.Name] = kv.Value
			}

			continue
		}

		if i < st.NumFields() {
			fields[st.Field(i).Name()] = elt
		}
	}

	var (
		k   key
		pos token.Pos
	)

	for name, expr := range fields {
		s, ok := constString(e.info, expr)
		if !ok {
			return
		}

		switch name {
		case "Context":
			k.context = s
		case "Source":
			k.source = s
			pos = expr.Pos()
		case "Comment":
			k.comment = s
		}
	}

	if pos.IsValid() {
		e.addRef(pos, k, false)
	}
}

// addRef records a reference to a message, normalising the file path relative
// to the computed project root.
func (e *extractor) addRef(pos token.Pos, k key, numerus bool) {
	if k.source == "" {
		return
	}

	p := e.fset.Position(pos)

	file := p.Filename
	if rel, err := filepath.Rel(e.projectRoot, file); err == nil {
		file = rel
	}

	ent, ok := e.entries[k]
	if !ok {
		ent = &entry{key: k}
		e.entries[k] = ent
	}

	ent.numerus = ent.numerus || numerus
	ent.refs = append(ent.refs, ts.Location{File: filepath.ToSlash(file), Line: p.Line})
}

// catalog builds the template: contexts sorted by name, messages in order of
// their first reference, every translation empty and unfinished.
func (e *extractor) catalog(sourceLanguage string) *ts.Catalog {
	entries := make([]*entry, 0, len(e.entries))

	for _, ent := range e.entries {
		slices.SortFunc(ent.refs, compareLocations)
		ent.refs = slices.Compact(ent.refs)
		entries = append(entries, ent)
	}

	slices.SortFunc(entries, func(a, b *entry) int {
		return cmp.Or(
			cmp.Compare(a.context, b.context),
			compareLocations(a.refs[0], b.refs[0]),
			cmp.Compare(a.source, b.source),
			cmp.Compare(a.comment, b.comment),
		)
	})

	cat := &ts.Catalog{Version: templateVersion, SourceLanguage: sourceLanguage}

	var ctx *ts.Context

	for _, ent := range entries {
		if ctx == nil || ctx.Name != ent.context {
			ctx = &ts.Context{Name: ent.context}
			cat.Contexts = append(cat.Contexts, ctx)
		}

		m := &ts.Message{
			Source:    ent.source,
			Comment:   ent.comment,
			Locations: ent.refs,
			Numerus:   ent.numerus,
			Status:    ts.Unfinished,
		}

		if m.Numerus {
			m.NumerusForms = []string{""}
		}

		ctx.Messages = append(ctx.Messages, m)
	}

	return cat
}

func compareLocations(a, b ts.Location) int {
	return cmp.Or(cmp.Compare(a.File, b.File), cmp.Compare(a.Line, b.Line))
}
