package prevent

import "testing"

func TestCompute(t *testing.T) {
	tests := []struct {
		name   string
		damage int
		risk   int
		grit   int
		veil   int
		want   Record
	}{
		{"half grit rounds down", 10, 0, 8, 0, Record{DamagePrevented: 4}},
		{"odd grit floors", 10, 0, 7, 0, Record{DamagePrevented: 3}},
		{"capped at damage", 2, 0, 20, 0, Record{DamagePrevented: 2}},
		{"veil prevents risk", 0, 9, 0, 6, Record{RiskPrevented: 3}},
		{"zero pools", 0, 0, 0, 0, Record{}},
		{"negative grit clamps", 10, 0, -4, 0, Record{}},
		{"negative damage clamps cap", -5, 0, 8, 0, Record{}},
		{"both axes", 10, 4, 8, 10, Record{DamagePrevented: 4, RiskPrevented: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.damage, tt.risk, tt.grit, tt.veil)
			if got != tt.want {
				t.Fatalf("Compute() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeBoundsHold(t *testing.T) {
	// Prevention is never negative and never exceeds the stat it prevents.
	for damage := -2; damage <= 12; damage += 2 {
		for grit := -2; grit <= 24; grit += 3 {
			rec := Compute(damage, 0, grit, 0)
			if rec.DamagePrevented < 0 {
				t.Fatalf("negative prevention for damage=%d grit=%d", damage, grit)
			}
			if damage >= 0 && rec.DamagePrevented > damage {
				t.Fatalf("prevention %d exceeds damage %d (grit=%d)", rec.DamagePrevented, damage, grit)
			}
		}
	}
}
