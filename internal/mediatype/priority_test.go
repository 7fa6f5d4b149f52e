package mediatype

import "testing"

func descriptor(t *testing.T, data Data) *Type {
	t.Helper()
	typ, err := New(data)
	if err != nil {
		t.Fatalf("New(%q) failed: %v", data.ContentType, err)
	}
	return typ
}

func TestPriorityRegisteredSortsFirst(t *testing.T) {
	a := descriptor(t, Data{ContentType: "application/xml", Registered: true, Extensions: []string{"xml"}})
	b := descriptor(t, Data{ContentType: "application/xml", Extensions: []string{"xml"}})

	types := []*Type{b, a}
	SortByPriority(types)
	if types[0] != a || types[1] != b {
		t.Errorf("registered descriptor should sort first, got %v", []*Type{types[0], types[1]})
	}
}

func TestPriorityCompleteSortsBeforeIncomplete(t *testing.T) {
	complete := descriptor(t, Data{ContentType: "audio/example", Extensions: []string{"exa"}})
	incomplete := descriptor(t, Data{ContentType: "audio/example"})

	if PriorityCompare(complete, incomplete) >= 0 {
		t.Error("complete should compare before incomplete")
	}
	if PriorityCompare(incomplete, complete) <= 0 {
		t.Error("incomplete should compare after complete")
	}
}

func TestPriorityCurrentSortsBeforeObsolete(t *testing.T) {
	current := descriptor(t, Data{ContentType: "video/example"})
	obsolete := descriptor(t, Data{ContentType: "video/example", Obsolete: true})

	if PriorityCompare(current, obsolete) >= 0 {
		t.Error("current should compare before obsolete")
	}
}

func TestPriorityObsoleteWithReplacementFirst(t *testing.T) {
	withReplacement := descriptor(t, Data{ContentType: "text/example", Obsolete: true, UseInstead: "x/y"})
	without := descriptor(t, Data{ContentType: "text/example", Obsolete: true})

	types := []*Type{without, withReplacement}
	SortByPriority(types)
	if types[0] != withReplacement {
		t.Error("obsolete-with-replacement should sort before obsolete-without")
	}

	alpha := descriptor(t, Data{ContentType: "text/example", Obsolete: true, UseInstead: "a/b"})
	if PriorityCompare(alpha, withReplacement) >= 0 {
		t.Error("replacement names should order lexically")
	}
}

func TestPriorityCrossKeyOrdersBySimplified(t *testing.T) {
	app := descriptor(t, Data{ContentType: "application/xml", Registered: true})
	text := descriptor(t, Data{ContentType: "text/xml"})

	if PriorityCompare(app, text) >= 0 {
		t.Error("different keys must order lexically regardless of flags")
	}
}

func TestPriorityEqualDescriptorsAreStable(t *testing.T) {
	a := descriptor(t, Data{ContentType: "image/example", Registered: true, Extensions: []string{"exa"}})
	b := descriptor(t, Data{ContentType: "image/example", Registered: true, Extensions: []string{"exb"}})

	if PriorityCompare(a, b) != 0 {
		t.Error("descriptors tied on every criterion should compare equal")
	}

	types := []*Type{a, b}
	SortByPriority(types)
	if types[0] != a || types[1] != b {
		t.Error("sort must be stable for tied descriptors")
	}
}
