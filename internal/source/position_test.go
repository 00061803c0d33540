package source

import "testing"

func TestPositionAdvance(t *testing.T) {
	p := &Position{Line: 1, Column: 1, Index: 0}
	p.Advance("foo")
	if p.Line != 1 || p.Column != 4 || p.Index != 3 {
		t.Errorf("unexpected position after advance: %+v", p)
	}

	p = &Position{Line: 1, Column: 1, Index: 0}
	p.Advance("a\nb")
	if p.Line != 2 || p.Column != 2 {
		t.Errorf("expected line 2 col 2, got %+v", p)
	}
}

func TestLocationContains(t *testing.T) {
	loc := NewLocation(&Position{Line: 1, Column: 1}, &Position{Line: 1, Column: 10})
	if !loc.Contains(&Position{Line: 1, Column: 5}) {
		t.Error("expected position inside location")
	}
	if loc.Contains(&Position{Line: 2, Column: 1}) {
		t.Error("expected position outside location")
	}
}
