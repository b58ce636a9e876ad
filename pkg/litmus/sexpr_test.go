package litmus

import "testing"

func TestParseFinalEqual(t *testing.T) {
	prop, err := ParseFinal("(= (register x1 0) 1)")
	if err != nil {
		t.Fatalf("ParseFinal: %v", err)
	}
	if prop.Kind != PropEqual {
		t.Fatalf("Kind = %v, want PropEqual", prop.Kind)
	}
	if prop.Loc.Kind != LocRegister || prop.Loc.Thread != 0 || prop.Loc.Register != "x1" {
		t.Errorf("loc = %+v, want thread 0 register x1", prop.Loc)
	}
	if prop.Value != "1" {
		t.Errorf("value = %q, want \"1\"", prop.Value)
	}
}

func TestParseFinalLastWriteTo(t *testing.T) {
	prop, err := ParseFinal("(= *x 42)")
	if err != nil {
		t.Fatalf("ParseFinal: %v", err)
	}
	if prop.Loc.Kind != LocLastWriteTo || prop.Loc.Address != "x" {
		t.Errorf("loc = %+v, want LocLastWriteTo x", prop.Loc)
	}
}

func TestParseFinalAndOr(t *testing.T) {
	prop, err := ParseFinal("(and (= (register x1 0) 1) (or (= (register x0 1) 0) (= *y 0)))")
	if err != nil {
		t.Fatalf("ParseFinal: %v", err)
	}
	if prop.Kind != PropAnd || len(prop.Children) != 2 {
		t.Fatalf("prop = %+v, want And with 2 children", prop)
	}
	or := prop.Children[1]
	if or.Kind != PropOr || len(or.Children) != 2 {
		t.Fatalf("children[1] = %+v, want Or with 2 children", or)
	}
}

func TestParseFinalNot(t *testing.T) {
	prop, err := ParseFinal("(not (= (register x1 0) 0))")
	if err != nil {
		t.Fatalf("ParseFinal: %v", err)
	}
	if prop.Kind != PropNot || prop.Child == nil {
		t.Fatalf("prop = %+v, want Not with a child", prop)
	}
}

func TestParseFinalImplies(t *testing.T) {
	prop, err := ParseFinal("(=> (= (register x1 0) 0) (= (register x0 1) 1))")
	if err != nil {
		t.Fatalf("ParseFinal: %v", err)
	}
	if prop.Kind != PropImplies || prop.Left == nil || prop.Right == nil {
		t.Fatalf("prop = %+v, want Implies with both operands", prop)
	}
	if prop.Left.Kind != PropEqual || prop.Right.Kind != PropEqual {
		t.Errorf("implies operands = %+v / %+v, want two EqLoc props", prop.Left, prop.Right)
	}
}

func TestParseFinalUnknownOperator(t *testing.T) {
	if _, err := ParseFinal("(xor (= (register x1 0) 0) (= (register x1 0) 1))"); err == nil {
		t.Errorf("expected error for unknown operator xor")
	}
}

func TestParseFinalHexValue(t *testing.T) {
	prop, err := ParseFinal("(= (register x1 0) 0x10)")
	if err != nil {
		t.Fatalf("ParseFinal: %v", err)
	}
	if prop.Value != "0x10" {
		t.Errorf("value = %q, want \"0x10\"", prop.Value)
	}
}

// TestParseFinalCanonicalScenario exercises spec.md §8 scenario 6's
// canonical example verbatim.
func TestParseFinalCanonicalScenario(t *testing.T) {
	prop, err := ParseFinal("(and (= (register X0 0) #x1) (not (= (register X0 1) #x0)))")
	if err != nil {
		t.Fatalf("ParseFinal: %v", err)
	}
	if prop.Kind != PropAnd || len(prop.Children) != 2 {
		t.Fatalf("prop = %+v, want And with 2 children", prop)
	}
	eq := prop.Children[0]
	if eq.Kind != PropEqual || eq.Loc.Register != "X0" || eq.Loc.Thread != 0 || eq.Value != "0x1" {
		t.Errorf("children[0] = %+v, want EqLoc(register X0 0, 0x1)", eq)
	}
	not := prop.Children[1]
	if not.Kind != PropNot || not.Child == nil {
		t.Fatalf("children[1] = %+v, want Not", not)
	}
	inner := not.Child
	if inner.Kind != PropEqual || inner.Loc.Register != "X0" || inner.Loc.Thread != 1 || inner.Value != "0x0" {
		t.Errorf("not child = %+v, want EqLoc(register X0 1, 0x0)", inner)
	}
}
