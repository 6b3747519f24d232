// interpreter_exec.go — PRIVATE: statement and expression evaluation.
//   - One type-switch per syntactic category; every evaluator returns
//     (Value, error) and the first error aborts.
//   - Loop bodies run through runLoopBody, which intercepts break/continue
//     signals; returnSignal passes through it to the enclosing call.
//   - No exported identifiers here. The public facade lives in interpreter.go.
package nikl

func (ip *Interpreter) execStatement(s Statement) (Value, error) {
	switch st := s.(type) {
	case *LetStatement:
		v, err := ip.evalExpression(st.Value)
		if err != nil {
			return Null, err
		}
		if err := ip.env.Define(st.Name, v, st.Mutable); err != nil {
			return Null, err
		}
		return Null, nil

	case *FunctionStatement:
		return ip.execFunctionStatement(st)

	case *ExpressionStatement:
		return ip.evalExpression(st.Expr)

	case *IfStatement:
		return ip.execIfStatement(st)

	case *WhileStatement:
		return ip.execWhileStatement(st)

	case *ForStatement:
		return ip.execForStatement(st)

	case *LoopStatement:
		for {
			stop, err := ip.runLoopBody(st.Body)
			if err != nil {
				return Null, err
			}
			if stop {
				return Null, nil
			}
		}

	case *BreakStatement:
		return Null, breakSignal{}

	case *ContinueStatement:
		return Null, continueSignal{}

	case *ReturnStatement:
		val := Null
		if st.Value != nil {
			v, err := ip.evalExpression(st.Value)
			if err != nil {
				return Null, err
			}
			val = v
		}
		return Null, returnSignal{val: val}

	case *ImportStatement:
		return Null, ip.importModule(st)

	case *DeleteStatement:
		return Null, ip.env.Delete(st.Name)

	default:
		return Null, rtErrf("Unknown statement: %s", s.String())
	}
}

// execFunctionStatement builds the closure and binds it. The definition env
// chain is deep-copied at this moment; the function is then defined into its
// own snapshot so direct recursion resolves, and into the current scope
// immutably.
func (ip *Interpreter) execFunctionStatement(st *FunctionStatement) (Value, error) {
	fn := &Function{Name: st.Name, Params: st.Params, Body: st.Body}
	snapshot := ip.env.Clone()
	fn.Env = snapshot
	// Ignore a collision inside the snapshot: when the name is already
	// taken in the current frame the Define below fails the same way.
	_ = snapshot.Define(st.Name, FuncVal(fn), false)
	if err := ip.env.Define(st.Name, FuncVal(fn), false); err != nil {
		return Null, err
	}
	return Null, nil
}

// evalCondition evaluates an if/while condition, which must be a Boolean.
func (ip *Interpreter) evalCondition(e Expression) (bool, error) {
	v, err := ip.evalExpression(e)
	if err != nil {
		return false, err
	}
	if v.Tag != VTBool {
		return false, rtErrf("Condition must be a Boolean, got %s", v.TypeName())
	}
	return v.Data.(bool), nil
}

// execIfStatement runs the first branch whose condition holds. Branch bodies
// execute in the current environment.
func (ip *Interpreter) execIfStatement(st *IfStatement) (Value, error) {
	ok, err := ip.evalCondition(st.Condition)
	if err != nil {
		return Null, err
	}
	if ok {
		return Null, ip.execBlock(st.Body)
	}
	for _, br := range st.ElseIfs {
		ok, err := ip.evalCondition(br.Condition)
		if err != nil {
			return Null, err
		}
		if ok {
			return Null, ip.execBlock(br.Body)
		}
	}
	if st.ElseBody != nil {
		return Null, ip.execBlock(st.ElseBody)
	}
	return Null, nil
}

// execBlock runs statements in the current environment. Signals propagate
// to the surrounding loop or call.
func (ip *Interpreter) execBlock(body []Statement) error {
	for _, s := range body {
		if _, err := ip.execStatement(s); err != nil {
			return err
		}
	}
	return nil
}

func (ip *Interpreter) execWhileStatement(st *WhileStatement) (Value, error) {
	for {
		ok, err := ip.evalCondition(st.Condition)
		if err != nil {
			return Null, err
		}
		if !ok {
			return Null, nil
		}
		stop, err := ip.runLoopBody(st.Body)
		if err != nil {
			return Null, err
		}
		if stop {
			return Null, nil
		}
	}
}

// execForStatement iterates a String, Array, or Tuple with one loop
// variable, or a HashMap with a key and a value variable. Loop variables
// are declared mutable before the first iteration and reassigned on each
// one, so they stay visible (holding the last value) after the loop.
func (ip *Interpreter) execForStatement(st *ForStatement) (Value, error) {
	iter, err := ip.evalExpression(st.Iterable)
	if err != nil {
		return Null, err
	}
	switch iter.Tag {
	case VTStr:
		if len(st.Names) != 1 {
			return Null, rtErrf("%s iteration takes 1 loop variable, got %d", iter.TypeName(), len(st.Names))
		}
		if err := ip.declareLoopVars(st.Names); err != nil {
			return Null, err
		}
		for _, r := range iter.Data.(string) {
			if err := ip.env.Assign(st.Names[0], Str(string(r))); err != nil {
				return Null, err
			}
			stop, err := ip.runLoopBody(st.Body)
			if err != nil {
				return Null, err
			}
			if stop {
				return Null, nil
			}
		}
		return Null, nil

	case VTArray, VTTuple:
		if len(st.Names) != 1 {
			return Null, rtErrf("%s iteration takes 1 loop variable, got %d", iter.TypeName(), len(st.Names))
		}
		if err := ip.declareLoopVars(st.Names); err != nil {
			return Null, err
		}
		xs := iter.Data.([]Value)
		elems := make([]Value, len(xs))
		copy(elems, xs)
		for _, el := range elems {
			if err := ip.env.Assign(st.Names[0], el); err != nil {
				return Null, err
			}
			stop, err := ip.runLoopBody(st.Body)
			if err != nil {
				return Null, err
			}
			if stop {
				return Null, nil
			}
		}
		return Null, nil

	case VTMap:
		if len(st.Names) != 2 {
			return Null, rtErrf("HashMap iteration takes 2 loop variables, got %d", len(st.Names))
		}
		if err := ip.declareLoopVars(st.Names); err != nil {
			return Null, err
		}
		m := iter.Data.(*MapObject)
		entries := make([]MapEntry, len(m.Entries))
		copy(entries, m.Entries)
		for _, e := range entries {
			if err := ip.env.Assign(st.Names[0], e.Key); err != nil {
				return Null, err
			}
			if err := ip.env.Assign(st.Names[1], e.Val); err != nil {
				return Null, err
			}
			stop, err := ip.runLoopBody(st.Body)
			if err != nil {
				return Null, err
			}
			if stop {
				return Null, nil
			}
		}
		return Null, nil

	default:
		return Null, rtErrf("Type error: %s is not iterable", iter.TypeName())
	}
}

// declareLoopVars makes each loop variable exist as a mutable binding.
// Names already in scope are reused; assigning to one bound with const
// fails on the first iteration with the usual immutability error.
func (ip *Interpreter) declareLoopVars(names []string) error {
	for _, n := range names {
		if ip.env.Has(n) {
			continue
		}
		if err := ip.env.Define(n, Null, true); err != nil {
			return err
		}
	}
	return nil
}

// runLoopBody executes one pass over a loop body and reports how it ended:
// stop is true when a breakSignal surfaced. continueSignal just ends the
// pass; anything else (returnSignal included) propagates.
func (ip *Interpreter) runLoopBody(body []Statement) (stop bool, err error) {
	for _, s := range body {
		if _, err := ip.execStatement(s); err != nil {
			switch err.(type) {
			case breakSignal:
				return true, nil
			case continueSignal:
				return false, nil
			default:
				return false, err
			}
		}
	}
	return false, nil
}

// ─────────────────────────────── expressions ────────────────────────────────

func (ip *Interpreter) evalExpression(e Expression) (Value, error) {
	switch ex := e.(type) {
	case *IntegerLiteral:
		return Int(ex.Value), nil
	case *FloatLiteral:
		return Float(ex.Value), nil
	case *StringLiteral:
		return Str(ex.Value), nil
	case *BooleanLiteral:
		return Bool(ex.Value), nil
	case *Identifier:
		return ip.env.Get(ex.Name)

	case *ArrayLiteral:
		xs, err := ip.evalExpressions(ex.Elements)
		if err != nil {
			return Null, err
		}
		return Arr(xs), nil

	case *TupleLiteral:
		xs, err := ip.evalExpressions(ex.Elements)
		if err != nil {
			return Null, err
		}
		return Tup(xs), nil

	case *MapLiteral:
		// Pairs are kept verbatim in source order; a duplicated key keeps
		// both entries and lookup finds the first.
		m := &MapObject{Entries: make([]MapEntry, 0, len(ex.Pairs))}
		for _, p := range ex.Pairs {
			k, err := ip.evalExpression(p.Key)
			if err != nil {
				return Null, err
			}
			v, err := ip.evalExpression(p.Value)
			if err != nil {
				return Null, err
			}
			m.Entries = append(m.Entries, MapEntry{Key: k, Val: v})
		}
		return MapVal(m), nil

	case *PrefixExpression:
		right, err := ip.evalExpression(ex.Right)
		if err != nil {
			return Null, err
		}
		return evalUnaryOp(ex.Op, right)

	case *InfixExpression:
		left, err := ip.evalExpression(ex.Left)
		if err != nil {
			return Null, err
		}
		right, err := ip.evalExpression(ex.Right)
		if err != nil {
			return Null, err
		}
		return evalBinaryOp(ex.Op, left, right)

	case *AssignExpression:
		v, err := ip.evalExpression(ex.Value)
		if err != nil {
			return Null, err
		}
		if err := ip.env.Assign(ex.Name, v); err != nil {
			return Null, err
		}
		return v, nil

	case *CallExpression:
		return ip.evalCall(ex)

	case *AccessExpression:
		return ip.evalAccess(ex)

	default:
		return Null, rtErrf("Unknown expression: %s", e.String())
	}
}

func (ip *Interpreter) evalExpressions(exprs []Expression) ([]Value, error) {
	xs := make([]Value, 0, len(exprs))
	for _, e := range exprs {
		v, err := ip.evalExpression(e)
		if err != nil {
			return nil, err
		}
		xs = append(xs, v)
	}
	return xs, nil
}

// evalCall evaluates the callee, then the arguments left to right exactly
// once, then applies. User functions run in a fresh child of their captured
// snapshot with parameters bound mutable.
func (ip *Interpreter) evalCall(ex *CallExpression) (Value, error) {
	callee, err := ip.evalExpression(ex.Function)
	if err != nil {
		return Null, err
	}
	args, err := ip.evalExpressions(ex.Args)
	if err != nil {
		return Null, err
	}

	switch callee.Tag {
	case VTBuiltin:
		return callee.Data.(*Builtin).Fn(args)

	case VTFunc:
		fn := callee.Data.(*Function)
		if len(args) != len(fn.Params) {
			return Null, rtErrf("Function '%s' expects %d arguments, but got %d",
				fn.Name, len(fn.Params), len(args))
		}
		child := NewEnv(fn.Env)
		for i, p := range fn.Params {
			if err := child.Define(p, args[i], true); err != nil {
				return Null, err
			}
		}
		return ip.callInEnv(fn.Body, child)

	default:
		return Null, rtErrf("Tried to call non-function")
	}
}

// callInEnv runs a function body in env and unwraps returnSignal at this
// boundary. A break or continue crossing a call is outside any loop and
// becomes a runtime error here.
func (ip *Interpreter) callInEnv(body []Statement, env *Env) (Value, error) {
	saved := ip.env
	ip.env = env
	defer func() { ip.env = saved }()

	for _, s := range body {
		if _, err := ip.execStatement(s); err != nil {
			switch sig := err.(type) {
			case returnSignal:
				return sig.val, nil
			case breakSignal:
				return Null, rtErrf("Unexpected 'break' outside of a loop")
			case continueSignal:
				return Null, rtErrf("Unexpected 'continue' outside of a loop")
			default:
				return Null, err
			}
		}
	}
	return Null, nil
}

// evalAccess resolves `object.name`. The object must be a HashMap (modules
// are flattened to HashMaps), and the member is looked up under the string
// key name.
func (ip *Interpreter) evalAccess(ex *AccessExpression) (Value, error) {
	obj, err := ip.evalExpression(ex.Object)
	if err != nil {
		return Null, err
	}
	if obj.Tag != VTMap {
		return Null, rtErrf("Cannot access '%s' on %s", ex.Name, obj.TypeName())
	}
	v, ok := obj.Data.(*MapObject).Get(Str(ex.Name))
	if !ok {
		return Null, rtErrf("Undefined member '%s'", ex.Name)
	}
	return v, nil
}
