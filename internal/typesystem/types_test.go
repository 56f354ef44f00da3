package typesystem

import "testing"

func TestEqualPrimitive(t *testing.T) {
	if !Equal(Primitive{Kind: I32}, Primitive{Kind: I32}) {
		t.Fatal("expected i32 == i32")
	}
	if Equal(Primitive{Kind: I32}, Primitive{Kind: I64}) {
		t.Fatal("expected i32 != i64")
	}
}

func TestEqualArrayUnsizedMatchesSized(t *testing.T) {
	sized := 3
	a := Array{Elem: Primitive{Kind: I32}, Size: nil}
	b := Array{Elem: Primitive{Kind: I32}, Size: &sized}
	if !Equal(a, b) {
		t.Fatal("expected unsized array to be compatible with a sized one of the same element type")
	}
}

func TestEqualGenericInstance(t *testing.T) {
	a := GenericInstance{Name: "Box", Args: []Type{Primitive{Kind: I32}}}
	b := GenericInstance{Name: "Box", Args: []Type{Primitive{Kind: I32}}}
	c := GenericInstance{Name: "Box", Args: []Type{Primitive{Kind: I64}}}
	if !Equal(a, b) {
		t.Fatal("expected Box<i32> == Box<i32>")
	}
	if Equal(a, c) {
		t.Fatal("expected Box<i32> != Box<i64>")
	}
}

func TestMangledName(t *testing.T) {
	g := GenericInstance{Name: "Box", Args: []Type{Primitive{Kind: I32}}}
	if got := g.MangledName(); got != "Box_i32" {
		t.Fatalf("expected Box_i32, got %s", got)
	}
	nested := GenericInstance{Name: "Pair", Args: []Type{
		GenericInstance{Name: "Box", Args: []Type{Primitive{Kind: I32}}},
		Primitive{Kind: Bool},
	}}
	if got := nested.MangledName(); got != "Pair_Box_i32_bool" {
		t.Fatalf("expected Pair_Box_i32_bool, got %s", got)
	}
}

func TestCompatibleAtAnnotation(t *testing.T) {
	if !CompatibleAtAnnotation(LiteralDefaultInt, Primitive{Kind: U8}) {
		t.Fatal("expected default int literal compatible with u8 annotation")
	}
	if !CompatibleAtAnnotation(LiteralDefaultFloat, Primitive{Kind: F32}) {
		t.Fatal("expected default float literal compatible with f32 annotation")
	}
	if CompatibleAtAnnotation(LiteralDefaultInt, Primitive{Kind: Bool}) {
		t.Fatal("expected default int literal incompatible with bool annotation")
	}
}

func TestCompatibleAtAnnotationNamedVsGenericInstance(t *testing.T) {
	bare := Named{Name: "Result"}
	instantiated := GenericInstance{Name: "Result", Args: []Type{Primitive{Kind: I32}, Primitive{Kind: I32}}}
	if !CompatibleAtAnnotation(bare, instantiated) {
		t.Fatal("expected bare Result compatible with Result<i32, i32> annotation")
	}
	if !CompatibleAtAnnotation(instantiated, bare) {
		t.Fatal("expected Result<i32, i32> compatible with bare Result annotation")
	}
	if CompatibleAtAnnotation(Named{Name: "Option"}, instantiated) {
		t.Fatal("expected Option incompatible with Result<i32, i32> annotation")
	}
}

func TestSubstitute(t *testing.T) {
	generic := Array{Elem: Generic{Name: "T"}, Size: nil}
	subst := Subst{"T": Primitive{Kind: I32}}
	result := Substitute(generic, subst)
	want := Array{Elem: Primitive{Kind: I32}, Size: nil}
	if !Equal(result, want) {
		t.Fatalf("expected %s, got %s", want, result)
	}
}
