// Package typecheck implements the out-of-specification-depth front end's
// semantic analysis pass: the thin, hand-rolled static checker that turns
// a bare internal/parser AST into the fully-typed AST spec.md §6 assumes
// as its own pipeline's input. It resolves every Identifier's symbol
// (written directly onto the AST node, mirroring codegen/ident.go's
// read-side contract), classifies every expression into the closed type
// lattice of internal/typing, and records the result into a
// resolve.Table the Module Assembler can consume unchanged.
//
// It is grounded on the teacher's bootstrap/walk package: a single
// Checker carrying a stack of local scopes (Walker.localScopes),
// push/pop/define/lookup helpers mirroring Walker's, and a per-
// definition error-collection policy mirroring walkDef's "one bad
// definition does not abort the others" behavior -- trimmed to this
// repository's much smaller lattice (no type variables, no operator
// overloading, no generics, no structural subtyping beyond the four
// scalar leaves and the two ref shapes spec.md §3 defines).
package typecheck

import (
	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/report"
	"nitro/internal/resolve"
	"nitro/internal/typing"
)

// Checker performs semantic analysis over a whole program's function
// declarations, one function at a time.
type Checker struct {
	funcs  map[string]*ast.FuncDecl
	table  *resolve.Table
	scopes []map[string]*common.Symbol

	// symTypes records the declared type of every symbol a VarDecl or
	// function parameter introduces -- common.Symbol carries no type
	// field of its own (it is shared with the pure-codegen test suite,
	// which never needs one), so the checker keeps this side table for
	// the lifetime of a single function check.
	symTypes map[*common.Symbol]typing.Type

	// fields assigns a stable slot index to every object field name seen
	// across the whole program. This repository's restricted surface has
	// no class-declaration syntax (spec.md's object model is nominal only
	// through `new ClassName(args)` and field literals), so there is no
	// per-class layout to consult -- every field name gets one slot,
	// shared by every object that uses it. A real front end would key
	// this by inferred class identity; this one does not need to, since
	// nothing in the restricted grammar can observe two different classes
	// giving the same field name two different slots.
	fields map[string]int

	enclosingReturn typing.Type
	loopDepth       int
}

// Check type-checks every declaration in decls and returns the resulting
// resolve.Table together with the per-function error aggregation (spec.md
// §7's "errors aggregate by function; one malformed function does not
// abort the others").
func Check(decls []*ast.FuncDecl) (*resolve.Table, *report.Aggregator) {
	c := &Checker{
		funcs:  make(map[string]*ast.FuncDecl),
		table:  resolve.NewTable(),
		fields: make(map[string]int),
	}
	for _, decl := range decls {
		c.funcs[decl.Name] = decl
	}

	agg := &report.Aggregator{}
	for _, decl := range decls {
		errs := c.checkFunc(decl)
		agg.Record(decl.Name, errs)
	}
	return c.table, agg
}

func (c *Checker) checkFunc(decl *ast.FuncDecl) []*report.CompileError {
	c.scopes = nil
	c.symTypes = make(map[*common.Symbol]typing.Type)
	c.enclosingReturn = decl.ReturnType
	c.loopDepth = 0

	c.pushScope()
	defer c.popScope()

	for _, p := range decl.Params {
		c.define(p.Sym, p.Type)
	}

	if decl.Body == nil {
		return nil
	}
	return c.checkStmts(decl.Body.Stmts)
}

// -----------------------------------------------------------------------------
// Scope management (mirrors the teacher's pushScope/popScope/lookup/
// defineLocal in bootstrap/walk/walker.go).

func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, make(map[string]*common.Symbol))
}

func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *Checker) define(sym *common.Symbol, typ typing.Type) {
	c.scopes[len(c.scopes)-1][sym.Name] = sym
	c.symTypes[sym] = typ
}

// lookupLocal searches the scope stack in reverse order, implementing
// shadowing: an inner block's binding hides an outer one of the same
// name.
func (c *Checker) lookupLocal(name string) (*common.Symbol, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if sym, ok := c.scopes[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// -----------------------------------------------------------------------------
// Statements.

func (c *Checker) checkStmts(stmts []ast.Node) []*report.CompileError {
	var errs []*report.CompileError
	for _, stmt := range stmts {
		errs = append(errs, c.checkStmt(stmt)...)
	}
	return errs
}

func (c *Checker) checkBlockScoped(block *ast.Block) []*report.CompileError {
	c.pushScope()
	defer c.popScope()
	return c.checkStmts(block.Stmts)
}

func (c *Checker) checkStmt(stmt ast.Node) []*report.CompileError {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return c.checkVarDecl(s)
	case *ast.If:
		return c.checkIf(s)
	case *ast.While:
		return c.checkWhile(s)
	case *ast.For:
		return c.checkFor(s)
	case *ast.DoWhile:
		return c.checkDoWhile(s)
	case *ast.Break:
		if c.loopDepth == 0 {
			return []*report.CompileError{report.New(report.KindUnstructuredControlFlow, s.Pos(),
				"'break' outside of a loop")}
		}
		return nil
	case *ast.Continue:
		if c.loopDepth == 0 {
			return []*report.CompileError{report.New(report.KindUnstructuredControlFlow, s.Pos(),
				"'continue' outside of a loop")}
		}
		return nil
	case *ast.Return:
		return c.checkReturn(s)
	case *ast.Block:
		return c.checkBlockScoped(s)
	default:
		_, errs := c.checkExpr(stmt)
		return errs
	}
}

func (c *Checker) checkVarDecl(decl *ast.VarDecl) []*report.CompileError {
	var errs []*report.CompileError
	for i := range decl.Entries {
		entry := &decl.Entries[i]
		if entry.Initializer != nil {
			initType, initErrs := c.checkExpr(entry.Initializer)
			errs = append(errs, initErrs...)
			if len(initErrs) == 0 && !assignable(initType, entry.Type) {
				errs = append(errs, report.New(report.KindTypeMismatch, entry.Initializer.Pos(),
					"cannot initialize %q of type %s with a value of type %s",
					entry.Sym.Name, entry.Type, initType))
			}
		}
		c.define(entry.Sym, entry.Type)
	}
	return errs
}

func (c *Checker) checkIf(ifStmt *ast.If) []*report.CompileError {
	var errs []*report.CompileError
	for _, branch := range ifStmt.Branches {
		condType, condErrs := c.checkExpr(branch.Cond)
		errs = append(errs, condErrs...)
		if len(condErrs) == 0 && !typing.IsBool(condType) {
			errs = append(errs, report.New(report.KindTypeMismatch, branch.Cond.Pos(),
				"'if' condition must be bool, got %s", condType))
		}
		errs = append(errs, c.checkBlockScoped(branch.Body)...)
	}
	if ifStmt.Else != nil {
		errs = append(errs, c.checkBlockScoped(ifStmt.Else)...)
	}
	return errs
}

func (c *Checker) checkWhile(w *ast.While) []*report.CompileError {
	condType, errs := c.checkExpr(w.Cond)
	if len(errs) == 0 && !typing.IsBool(condType) {
		errs = append(errs, report.New(report.KindTypeMismatch, w.Cond.Pos(),
			"'while' condition must be bool, got %s", condType))
	}
	c.loopDepth++
	errs = append(errs, c.checkBlockScoped(w.Body)...)
	c.loopDepth--
	return errs
}

func (c *Checker) checkDoWhile(d *ast.DoWhile) []*report.CompileError {
	c.loopDepth++
	errs := c.checkBlockScoped(d.Body)
	c.loopDepth--

	condType, condErrs := c.checkExpr(d.Cond)
	errs = append(errs, condErrs...)
	if len(condErrs) == 0 && !typing.IsBool(condType) {
		errs = append(errs, report.New(report.KindTypeMismatch, d.Cond.Pos(),
			"'do while' condition must be bool, got %s", condType))
	}
	return errs
}

func (c *Checker) checkFor(f *ast.For) []*report.CompileError {
	c.pushScope()
	defer c.popScope()

	var errs []*report.CompileError
	if f.Init != nil {
		errs = append(errs, c.checkStmt(f.Init)...)
	}
	if f.Cond != nil {
		condType, condErrs := c.checkExpr(f.Cond)
		errs = append(errs, condErrs...)
		if len(condErrs) == 0 && !typing.IsBool(condType) {
			errs = append(errs, report.New(report.KindTypeMismatch, f.Cond.Pos(),
				"'for' condition must be bool, got %s", condType))
		}
	}

	c.loopDepth++
	errs = append(errs, c.checkStmts(f.Body.Stmts)...)
	c.loopDepth--

	if f.Update != nil {
		errs = append(errs, c.checkStmt(f.Update)...)
	}
	return errs
}

func (c *Checker) checkReturn(ret *ast.Return) []*report.CompileError {
	if ret.Value == nil {
		if !c.enclosingReturn.IsVoid() {
			return []*report.CompileError{report.New(report.KindTypeMismatch, ret.Pos(),
				"missing return value, function returns %s", c.enclosingReturn)}
		}
		return nil
	}

	valType, errs := c.checkExpr(ret.Value)
	if len(errs) == 0 && !assignable(valType, c.enclosingReturn) {
		errs = append(errs, report.New(report.KindTypeMismatch, ret.Value.Pos(),
			"cannot return a value of type %s from a function declared to return %s",
			valType, c.enclosingReturn))
	}
	return errs
}

// -----------------------------------------------------------------------------
// Expressions.

func (c *Checker) checkExpr(node ast.Node) (typing.Type, []*report.CompileError) {
	switch n := node.(type) {
	case *ast.Literal:
		return c.checkLiteral(n)
	case *ast.Identifier:
		return c.checkIdentifier(n)
	case *ast.BinaryOp:
		return c.checkBinaryOp(n)
	case *ast.UnaryOp:
		return c.checkUnaryOp(n)
	case *ast.Call:
		return c.checkCall(n)
	case *ast.PropertyAccess:
		return c.checkPropertyAccess(n)
	case *ast.ElementAccess:
		return c.checkElementAccess(n)
	case *ast.NewExpr:
		return c.checkNewExpr(n)
	case *ast.ArrayLiteral:
		return c.checkArrayLiteral(n)
	case *ast.ObjectLiteral:
		return c.checkObjectLiteral(n)
	default:
		return typing.Void(), []*report.CompileError{report.New(report.KindUnsupportedSyntacticCategory, node.Pos(),
			"unsupported expression node %T", node)}
	}
}

func (c *Checker) checkLiteral(lit *ast.Literal) (typing.Type, []*report.CompileError) {
	var typ typing.Type
	switch {
	case lit.IsString:
		typ = typing.RefObject()
	case lit.IsFloat:
		typ = typing.Float64()
	case lit.IsBool:
		typ = typing.Bool()
	default:
		typ = typing.Int32()
	}
	c.table.SetType(lit, typ)
	return typ, nil
}

// checkIdentifier resolves ident against the local scope chain first,
// then the program's global function table -- matching the teacher's
// lookup precedence (locals shadow everything else). The resolved symbol
// is written directly onto ident.Sym, the same field codegen/ident.go
// reads, so no further resolver lookup is needed to compile an
// identifier reference.
func (c *Checker) checkIdentifier(ident *ast.Identifier) (typing.Type, []*report.CompileError) {
	if sym, ok := c.lookupLocal(ident.Name); ok {
		ident.Sym = sym
		typ := c.symTypes[sym]
		c.table.SetType(ident, typ)
		return typ, nil
	}
	if fn, ok := c.funcs[ident.Name]; ok {
		ident.Sym = fn.Sym
		typ := typing.Function(fn.Signature())
		c.table.SetType(ident, typ)
		return typ, nil
	}
	return typing.Void(), []*report.CompileError{report.New(report.KindUnresolvedSymbol, ident.Pos(),
		"undefined identifier %q", ident.Name)}
}

func (c *Checker) checkBinaryOp(bin *ast.BinaryOp) (typing.Type, []*report.CompileError) {
	lt, errs := c.checkExpr(bin.Left)
	rt, rErrs := c.checkExpr(bin.Right)
	errs = append(errs, rErrs...)
	if len(errs) > 0 {
		return typing.Void(), errs
	}

	if bin.Op == common.OpAssign || bin.Op.IsCompoundAssign() {
		if !isAssignableTarget(bin.Left) {
			errs = append(errs, report.New(report.KindReadOnlyTarget, bin.Pos(),
				"left operand of %s is not assignable", bin.Op))
			return typing.Void(), errs
		}
		if ident, ok := bin.Left.(*ast.Identifier); ok && ident.Sym != nil && !ident.Sym.Mutable {
			errs = append(errs, report.New(report.KindReadOnlyTarget, bin.Pos(),
				"cannot assign to const %q", ident.Name))
		}
		if !assignable(rt, lt) {
			errs = append(errs, report.New(report.KindTypeMismatch, bin.Pos(),
				"cannot assign a value of type %s to %s", rt, lt))
		}
		c.table.SetType(bin, lt)
		return lt, errs
	}

	result, err := arithResultType(bin.Op, lt)
	if err != nil {
		return typing.Void(), []*report.CompileError{report.New(report.KindUnsupportedBinaryOperator, bin.Pos(), "%v", err)}
	}
	c.table.SetType(bin, result)
	return result, nil
}

func (c *Checker) checkUnaryOp(u *ast.UnaryOp) (typing.Type, []*report.CompileError) {
	operandType, errs := c.checkExpr(u.Operand)
	if len(errs) > 0 {
		return typing.Void(), errs
	}

	isIncrDecr := u.Op == common.OpPrefixIncr || u.Op == common.OpPrefixDecr ||
		u.Op == common.OpPostfixIncr || u.Op == common.OpPostfixDecr
	if isIncrDecr && !isAssignableTarget(u.Operand) {
		return typing.Void(), []*report.CompileError{report.New(report.KindReadOnlyTarget, u.Pos(),
			"increment/decrement operand is not assignable")}
	}

	var result typing.Type
	switch u.Op {
	case common.OpUnaryPlus, common.OpUnaryMinus:
		if typing.IsIntLike(operandType) {
			result = typing.Int32()
		} else if typing.IsNumberLike(operandType) {
			result = typing.Float64()
		} else {
			return typing.Void(), []*report.CompileError{report.New(report.KindUnsupportedUnaryOperator, u.Pos(),
				"unary %s requires a numeric operand, got %s", u.Op, operandType)}
		}
	case common.OpLogicalNot:
		if !typing.IsBool(operandType) {
			return typing.Void(), []*report.CompileError{report.New(report.KindUnsupportedUnaryOperator, u.Pos(),
				"'!' requires a bool operand, got %s", operandType)}
		}
		result = typing.Bool()
	case common.OpBitNot:
		if !typing.IsIntLike(operandType) {
			return typing.Void(), []*report.CompileError{report.New(report.KindUnsupportedUnaryOperator, u.Pos(),
				"'~' requires an int-like operand, got %s", operandType)}
		}
		result = typing.Int32()
	case common.OpPrefixIncr, common.OpPrefixDecr, common.OpPostfixIncr, common.OpPostfixDecr:
		if !typing.IsIntLike(operandType) && !typing.IsNumberLike(operandType) {
			return typing.Void(), []*report.CompileError{report.New(report.KindUnsupportedUnaryOperator, u.Pos(),
				"increment/decrement requires a numeric operand, got %s", operandType)}
		}
		result = operandType
	case common.OpTypeof:
		result = typing.RefObject()
	default:
		return typing.Void(), []*report.CompileError{report.New(report.KindUnsupportedUnaryOperator, u.Pos(),
			"operator %s is not supported", u.Op)}
	}

	c.table.SetType(u, result)
	return result, nil
}

// checkCall implements spec.md §4.4.5's callee resolution: callees are
// always bare function names in this restricted grammar (there is no
// function-typed variable declaration syntax), so the callee identifier
// is resolved directly against the program's global function table
// rather than the local scope chain.
func (c *Checker) checkCall(call *ast.Call) (typing.Type, []*report.CompileError) {
	if access, ok := call.Callee.(*ast.PropertyAccess); ok && access.Property == "push" {
		return c.checkArrayPush(call, access)
	}

	ident, ok := call.Callee.(*ast.Identifier)
	if !ok {
		return typing.Void(), []*report.CompileError{report.New(report.KindUnsupportedSyntacticCategory, call.Pos(),
			"call target must be a function name")}
	}

	callee, ok := c.funcs[ident.Name]
	if !ok {
		return typing.Void(), []*report.CompileError{report.New(report.KindUnresolvedSymbol, ident.Pos(),
			"call to undefined function %q", ident.Name)}
	}
	ident.Sym = callee.Sym
	sig := callee.Signature()
	c.table.SetType(ident, typing.Function(sig))
	c.table.SetSignature(call, sig)

	var errs []*report.CompileError
	if len(call.Args) != len(sig.Params) {
		errs = append(errs, report.New(report.KindTypeMismatch, call.Pos(),
			"%q expects %d argument(s), got %d", ident.Name, len(sig.Params), len(call.Args)))
	}
	for i, arg := range call.Args {
		argType, argErrs := c.checkExpr(arg)
		errs = append(errs, argErrs...)
		if i < len(sig.Params) && len(argErrs) == 0 && !assignable(argType, sig.Params[i]) {
			errs = append(errs, report.New(report.KindTypeMismatch, arg.Pos(),
				"argument %d of %q: cannot use a value of type %s as %s", i+1, ident.Name, argType, sig.Params[i]))
		}
	}

	c.table.SetType(call, sig.Result)
	return sig.Result, errs
}

// checkArrayPush implements `arr.push(value)`: the one growable-array
// operation SPEC_FULL.md §11 supplements from original_source's
// capacity-doubling Array<T>. It is recognized syntactically -- a call
// whose callee is a property access named "push" -- rather than through a
// dedicated AST category, since `postfix_expr` already parses this shape
// as an ordinary method-style call.
func (c *Checker) checkArrayPush(call *ast.Call, access *ast.PropertyAccess) (typing.Type, []*report.CompileError) {
	arrType, errs := c.checkExpr(access.Object)
	if len(errs) > 0 {
		return typing.Void(), errs
	}
	if !arrType.IsRefArray() {
		return typing.Void(), []*report.CompileError{report.New(report.KindTypeMismatch, access.Pos(),
			"'push' requires a ref(array<T>) receiver, got %s", arrType)}
	}

	if len(call.Args) != 1 {
		errs = append(errs, report.New(report.KindTypeMismatch, call.Pos(),
			"'push' expects exactly 1 argument, got %d", len(call.Args)))
	}
	for _, arg := range call.Args {
		argType, argErrs := c.checkExpr(arg)
		errs = append(errs, argErrs...)
		if len(call.Args) == 1 && len(argErrs) == 0 {
			elemType := elemTypeOf(arrType)
			if !assignable(argType, elemType) {
				errs = append(errs, report.New(report.KindTypeMismatch, arg.Pos(),
					"cannot push a value of type %s onto %s", argType, arrType))
			}
		}
	}

	c.table.SetType(call, typing.Void())
	return typing.Void(), errs
}

func (c *Checker) checkPropertyAccess(access *ast.PropertyAccess) (typing.Type, []*report.CompileError) {
	objType, errs := c.checkExpr(access.Object)
	if len(errs) > 0 {
		return typing.Void(), errs
	}
	if !objType.IsRefObject() {
		return typing.Void(), []*report.CompileError{report.New(report.KindTypeMismatch, access.Pos(),
			"property access requires a ref(object) receiver, got %s", objType)}
	}

	fieldSym := &common.Symbol{Name: access.Property, Slot: c.fieldSlot(access.Property)}
	c.table.SetSymbol(access, fieldSym)

	// Fields have no declared-type syntax in this grammar (object
	// literals assign them by position, not by a typed field list), so
	// every field reads back as int32, the same generic slot width
	// internal/runtimeabi stores every field/element as.
	c.table.SetType(access, typing.Int32())
	return typing.Int32(), nil
}

func (c *Checker) checkElementAccess(access *ast.ElementAccess) (typing.Type, []*report.CompileError) {
	arrType, errs := c.checkExpr(access.Array)
	idxType, idxErrs := c.checkExpr(access.Index)
	errs = append(errs, idxErrs...)
	if len(errs) > 0 {
		return typing.Void(), errs
	}
	if !arrType.IsRefArray() {
		return typing.Void(), []*report.CompileError{report.New(report.KindTypeMismatch, access.Pos(),
			"element access requires a ref(array<T>) receiver, got %s", arrType)}
	}
	if !typing.IsIntLike(idxType) {
		return typing.Void(), []*report.CompileError{report.New(report.KindTypeMismatch, access.Index.Pos(),
			"array index must be int32, got %s", idxType)}
	}

	result := elemTypeOf(arrType)
	c.table.SetType(access, result)
	return result, nil
}

// checkNewExpr implements `new ClassName(args)` (spec.md §4.4.9). A
// literal `ClassName` of "Array" is the one growable-array constructor
// this grammar exposes (SPEC_FULL.md §11): it takes an optional single
// int32 initial-capacity argument and produces ref(array<int32>), rather
// than the generic ref(object) every other class name produces.
func (c *Checker) checkNewExpr(newExpr *ast.NewExpr) (typing.Type, []*report.CompileError) {
	var errs []*report.CompileError
	for _, arg := range newExpr.Args {
		_, argErrs := c.checkExpr(arg)
		errs = append(errs, argErrs...)
	}

	if newExpr.ClassName == "Array" {
		if len(newExpr.Args) > 1 {
			errs = append(errs, report.New(report.KindTypeMismatch, newExpr.Pos(),
				"'new Array(...)' takes at most 1 argument (initial capacity), got %d", len(newExpr.Args)))
		}
		result := typing.RefArray(typing.ElemInt32)
		c.table.SetType(newExpr, result)
		return result, errs
	}

	c.table.SetType(newExpr, typing.RefObject())
	return typing.RefObject(), errs
}

// checkArrayLiteral infers the array's element kind from its first
// element and requires every remaining element to agree with it (spec.md
// §3's "T in {int32,float64,bool,ref}" is a single fixed kind per array,
// not a union).
func (c *Checker) checkArrayLiteral(lit *ast.ArrayLiteral) (typing.Type, []*report.CompileError) {
	if len(lit.Elements) == 0 {
		result := typing.RefArray(typing.ElemInt32)
		c.table.SetType(lit, result)
		return result, nil
	}

	var errs []*report.CompileError
	firstType, firstErrs := c.checkExpr(lit.Elements[0])
	errs = append(errs, firstErrs...)
	elemKind := elemKindOf(firstType)

	for _, elem := range lit.Elements[1:] {
		elemType, elemErrs := c.checkExpr(elem)
		errs = append(errs, elemErrs...)
		if len(elemErrs) == 0 && len(firstErrs) == 0 && elemKindOf(elemType) != elemKind {
			errs = append(errs, report.New(report.KindTypeMismatch, elem.Pos(),
				"array elements must share one type, got %s after %s", elemType, firstType))
		}
	}

	result := typing.RefArray(elemKind)
	c.table.SetType(lit, result)
	return result, errs
}

func (c *Checker) checkObjectLiteral(lit *ast.ObjectLiteral) (typing.Type, []*report.CompileError) {
	var errs []*report.CompileError
	for i, name := range lit.FieldNames {
		_, fieldErrs := c.checkExpr(lit.FieldValues[i])
		errs = append(errs, fieldErrs...)
		c.fieldSlot(name) // reserve a slot so a later PropertyAccess sees the same one
	}
	c.table.SetType(lit, typing.RefObject())
	return typing.RefObject(), errs
}

// fieldSlot returns the slot index assigned to a field name, assigning a
// fresh one the first time the name is seen.
func (c *Checker) fieldSlot(name string) int {
	if slot, ok := c.fields[name]; ok {
		return slot
	}
	slot := len(c.fields)
	c.fields[name] = slot
	return slot
}

// -----------------------------------------------------------------------------
// Shared helpers.

// assignable reports whether a value of type from can be used where a
// value of type to is required, per spec.md §4.4.1/§4.4.5's widening
// rule: equal types always work; int32 -> float64 is the only implicit
// conversion. This must stay in lock-step with codegen/binary.go's
// coerce, since that function performs the same check again at emission
// time.
func assignable(from, to typing.Type) bool {
	if from.Equal(to) {
		return true
	}
	return typing.IsIntLike(from) && typing.IsNumberLike(to) && !typing.IsIntLike(to)
}

// isAssignableTarget reports whether node is a syntactic form codegen's
// l-value machinery can store through: an identifier, a property access,
// or an element access.
func isAssignableTarget(node ast.Node) bool {
	switch node.(type) {
	case *ast.Identifier, *ast.PropertyAccess, *ast.ElementAccess:
		return true
	default:
		return false
	}
}

// arithResultType mirrors codegen/binary.go's genArith dispatch table
// closely enough to predict, ahead of codegen, what type a binary
// operator application will produce -- so that an array literal of
// binary-op elements, or a var-decl initialized by one, can still be
// checked against its declared type.
func arithResultType(op common.Operator, lType typing.Type) (typing.Type, error) {
	switch op {
	case common.OpAdd, common.OpSub, common.OpMul, common.OpDiv, common.OpMod:
		if typing.IsIntLike(lType) {
			return typing.Int32(), nil
		}
		if typing.IsNumberLike(lType) {
			return typing.Float64(), nil
		}
	case common.OpLt, common.OpGt, common.OpLe, common.OpGe, common.OpStrictEq, common.OpStrictNe:
		if typing.IsIntLike(lType) || typing.IsNumberLike(lType) {
			return typing.Bool(), nil
		}
	case common.OpBitOr:
		if typing.IsIntLike(lType) || typing.IsNumberLike(lType) {
			// The float-left-operand case is only legal as the `|0`
			// truncation idiom; codegen/binary.go's genBitOr re-validates
			// the right operand is the literal constant 0 at emission
			// time, since that is a value-level check this pass does not
			// perform.
			return typing.Int32(), nil
		}
	case common.OpBitAnd, common.OpBitXor, common.OpShl, common.OpShr, common.OpUShr:
		if typing.IsIntLike(lType) {
			return typing.Int32(), nil
		}
	}
	return typing.Void(), unsupportedBinaryOperatorErr(op, lType)
}

func unsupportedBinaryOperatorErr(op common.Operator, lType typing.Type) error {
	return &unsupportedBinaryOperator{op: op, lType: lType}
}

type unsupportedBinaryOperator struct {
	op    common.Operator
	lType typing.Type
}

func (e *unsupportedBinaryOperator) Error() string {
	return "operator " + e.op.String() + " has no emission rule for operand type " + e.lType.String()
}

func elemKindOf(t typing.Type) typing.ElemKind {
	switch {
	case typing.IsIntLike(t):
		return typing.ElemInt32
	case typing.IsNumberLike(t):
		return typing.ElemFloat64
	case typing.IsBool(t):
		return typing.ElemBool
	default:
		return typing.ElemRef
	}
}

func elemTypeOf(arrType typing.Type) typing.Type {
	switch arrType.ArrayElem() {
	case typing.ElemInt32:
		return typing.Int32()
	case typing.ElemFloat64:
		return typing.Float64()
	case typing.ElemBool:
		return typing.Bool()
	default:
		return typing.RefObject()
	}
}
