package binding

import (
	"reflect"
	"testing"
)

func TestInterpolate(t *testing.T) {
	values := Values{"Name": "Rahim Uddin", "ID": "1001", "Class": "Six"}
	cases := []struct {
		in   string
		want string
	}{
		{"Name: ${Name}", "Name: Rahim Uddin"},
		{"ID: ${ ID }", "ID: 1001"},
		{"${Class}/${Class}", "Six/Six"},
		{"Roll: ${Roll}", "Roll: ${Roll}"},
		{"no placeholders", "no placeholders"},
		{"${}", "${}"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, values); got != c.want {
			t.Fatalf("Interpolate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestInterpolateNilValuesKeepsText(t *testing.T) {
	if got := Interpolate("Name: ${Name}", nil); got != "Name: ${Name}" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestPlaceholdersAndUnresolved(t *testing.T) {
	tpl := "ID: ${ID}   Class: ${Class}  ${ID} ${Roll}"
	if got := Placeholders(tpl); !reflect.DeepEqual(got, []string{"ID", "Class", "Roll"}) {
		t.Fatalf("Placeholders = %v", got)
	}
	if got := Unresolved(tpl, Values{"ID": "1", "Class": "X"}); !reflect.DeepEqual(got, []string{"Roll"}) {
		t.Fatalf("Unresolved = %v", got)
	}
}
