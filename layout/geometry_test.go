package layout

import "testing"

func TestSlotFor(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		ordinal   int
		page, row int
		y         float64
	}{
		{0, 0, 0, 10},
		{1, 0, 1, 105},
		{2, 0, 2, 200},
		{3, 1, 0, 10},
		{7, 2, 1, 105},
	}
	for _, c := range cases {
		s := cfg.SlotFor(c.ordinal)
		if s.PageIndex != c.page || s.Row != c.row || s.Y != c.y {
			t.Fatalf("SlotFor(%d) = %+v, want page=%d row=%d y=%g", c.ordinal, s, c.page, c.row, c.y)
		}
		if s.Inner.X != s.Outer.X+3 || s.Inner.Right() != s.Outer.Right()-3 || s.Inner.Bottom() != s.Outer.Bottom()-3 {
			t.Fatalf("内框应在四边各内缩 3mm: outer=%+v inner=%+v", s.Outer, s.Inner)
		}
	}
}

func TestSlotsFitOnPage(t *testing.T) {
	cfg := DefaultConfig()
	last := cfg.SlotFor(cfg.CardsPerPage - 1)
	if last.Outer.Bottom() > cfg.PageHeight {
		t.Fatalf("最后一张卡片超出页面: bottom=%g page=%g", last.Outer.Bottom(), cfg.PageHeight)
	}
}

func TestPageCount(t *testing.T) {
	cfg := DefaultConfig()
	for n, want := range map[int]int{-1: 0, 0: 0, 1: 1, 3: 1, 4: 2, 6: 2, 7: 3, 300: 100} {
		if got := cfg.PageCount(n); got != want {
			t.Fatalf("PageCount(%d) = %d, want %d", n, got, want)
		}
	}
}
