// interpreter_ops.go — PRIVATE: binary and unary operator evaluation.
//
// Operands are matched pairwise by tag, the way the runtime defines each
// operator, and anything outside the table is a type error naming the
// operands in their debug form. Division checks for a zero divisor before
// dividing, for both Integer and Float, so it can never panic.
package nikl

import (
	"fmt"
	"strings"
)

// debugString renders a value the way type errors refer to it, tagged with
// its variant: Integer(1), String("x"), Bool(true), Array([...]), Null.
func (v Value) debugString() string {
	switch v.Tag {
	case VTNull:
		return "Null"
	case VTBool:
		return fmt.Sprintf("Bool(%v)", v.Data.(bool))
	case VTInt:
		return fmt.Sprintf("Integer(%d)", v.Data.(int64))
	case VTFloat:
		return fmt.Sprintf("Float(%v)", v.Data.(float64))
	case VTStr:
		return fmt.Sprintf("String(%q)", v.Data.(string))
	case VTArray, VTTuple:
		xs := v.Data.([]Value)
		parts := make([]string, len(xs))
		for i, x := range xs {
			parts[i] = x.debugString()
		}
		kind := "Array"
		if v.Tag == VTTuple {
			kind = "Tuple"
		}
		return kind + "([" + strings.Join(parts, ", ") + "])"
	case VTMap:
		m := v.Data.(*MapObject)
		parts := make([]string, len(m.Entries))
		for i, e := range m.Entries {
			parts[i] = "(" + e.Key.debugString() + ", " + e.Val.debugString() + ")"
		}
		return "HashMap([" + strings.Join(parts, ", ") + "])"
	case VTFunc:
		return fmt.Sprintf("Function(%q)", v.Data.(*Function).Name)
	case VTBuiltin:
		return "BuiltinFunction"
	default:
		return "<unknown>"
	}
}

func typeErr(op TokenType, l, r Value) error {
	return rtErrf("Type error: %s %s %s", l.debugString(), op, r.debugString())
}

// numericPair classifies the operands of an arithmetic/comparison operator:
// both Integer stays integral, any Float promotes both sides.
func numericPair(l, r Value) (li, ri int64, lf, rf float64, isInt, ok bool) {
	switch {
	case l.Tag == VTInt && r.Tag == VTInt:
		return l.Data.(int64), r.Data.(int64), 0, 0, true, true
	case l.Tag == VTFloat && r.Tag == VTFloat:
		return 0, 0, l.Data.(float64), r.Data.(float64), false, true
	case l.Tag == VTInt && r.Tag == VTFloat:
		return 0, 0, float64(l.Data.(int64)), r.Data.(float64), false, true
	case l.Tag == VTFloat && r.Tag == VTInt:
		return 0, 0, l.Data.(float64), float64(r.Data.(int64)), false, true
	}
	return 0, 0, 0, 0, false, false
}

func evalBinaryOp(op TokenType, l, r Value) (Value, error) {
	switch op {
	case PLUS:
		switch {
		case l.Tag == VTStr && r.Tag == VTStr:
			return Str(l.Data.(string) + r.Data.(string)), nil
		case l.Tag == VTStr && r.Tag == VTBool:
			return Str(l.Data.(string) + r.String()), nil
		case l.Tag == VTBool && r.Tag == VTStr:
			return Str(l.String() + r.Data.(string)), nil
		}
		if li, ri, lf, rf, isInt, ok := numericPair(l, r); ok {
			if isInt {
				return Int(li + ri), nil
			}
			return Float(lf + rf), nil
		}
		return Null, typeErr(op, l, r)

	case MINUS:
		if li, ri, lf, rf, isInt, ok := numericPair(l, r); ok {
			if isInt {
				return Int(li - ri), nil
			}
			return Float(lf - rf), nil
		}
		return Null, typeErr(op, l, r)

	case MULT:
		if li, ri, lf, rf, isInt, ok := numericPair(l, r); ok {
			if isInt {
				return Int(li * ri), nil
			}
			return Float(lf * rf), nil
		}
		return Null, typeErr(op, l, r)

	case DIV:
		return divideValues(op, l, r)

	case EQ, NEQ:
		sameShape := l.Tag == r.Tag ||
			(l.Tag == VTInt && r.Tag == VTFloat) ||
			(l.Tag == VTFloat && r.Tag == VTInt)
		if !sameShape {
			return Null, typeErr(op, l, r)
		}
		eq := valueEquals(l, r)
		if op == NEQ {
			eq = !eq
		}
		return Bool(eq), nil

	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		// Strings compare for equality only; ordering them is a type error.
		if li, ri, lf, rf, isInt, ok := numericPair(l, r); ok {
			if isInt {
				switch {
				case li < ri:
					return Bool(compareOrdered(op, -1)), nil
				case li > ri:
					return Bool(compareOrdered(op, 1)), nil
				default:
					return Bool(compareOrdered(op, 0)), nil
				}
			}
			switch {
			case lf < rf:
				return Bool(compareOrdered(op, -1)), nil
			case lf > rf:
				return Bool(compareOrdered(op, 1)), nil
			default:
				return Bool(compareOrdered(op, 0)), nil
			}
		}
		return Null, typeErr(op, l, r)

	case AND:
		if l.Tag == VTBool && r.Tag == VTBool {
			return Bool(l.Data.(bool) && r.Data.(bool)), nil
		}
		return Null, typeErr(op, l, r)

	case OR:
		if l.Tag == VTBool && r.Tag == VTBool {
			return Bool(l.Data.(bool) || r.Data.(bool)), nil
		}
		return Null, typeErr(op, l, r)

	default:
		return Null, rtErrf("Unsupported operator: %s", op)
	}
}

// compareOrdered turns a three-way comparison into the result of op.
func compareOrdered(op TokenType, cmp int) bool {
	switch op {
	case LESS:
		return cmp < 0
	case LESS_EQ:
		return cmp <= 0
	case GREATER:
		return cmp > 0
	default:
		return cmp >= 0
	}
}

// divideValues guards the zero divisor before any division happens.
func divideValues(op TokenType, l, r Value) (Value, error) {
	li, ri, lf, rf, isInt, ok := numericPair(l, r)
	if !ok {
		return Null, typeErr(op, l, r)
	}
	if isInt {
		if ri == 0 {
			return Null, rtErrf("Division by zero")
		}
		return Int(li / ri), nil
	}
	if rf == 0 {
		return Null, rtErrf("Division by zero")
	}
	return Float(lf / rf), nil
}

// evalUnaryOp handles the two prefix operators: `-` on Integer, `not` on
// Bool. Everything else, Float negation included, is a runtime error.
func evalUnaryOp(op TokenType, v Value) (Value, error) {
	switch {
	case op == MINUS && v.Tag == VTInt:
		return Int(-v.Data.(int64)), nil
	case op == NOT && v.Tag == VTBool:
		return Bool(!v.Data.(bool)), nil
	default:
		return Null, rtErrf("Unsupported unary operation: %s %s", op, v.debugString())
	}
}
