package profile

import (
	"fmt"
	"testing"

	"github.com/anatolykoptev/go_profile/internal/engine/dom"
)

const dot = "·"

func TestClassifyCluster(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  Shape
	}{
		{"four", []string{"Engineer", "Acme", "2020 - Present", "Remote"}, ShapeFour},
		{"three with separator", []string{"Engineer", "Acme", "Jan 2020 - Present · 2 yrs"}, ShapeThreeDated},
		{"three without separator", []string{"Acme", "Jan 2020 - Present", "Remote"}, ShapeThreeUndated},
		{"separator only counts in third", []string{"Engineer · Lead", "Acme", "Remote"}, ShapeThreeUndated},
		{"single", []string{"Acme"}, ShapeSingle},
		{"two", []string{"Acme", "3 yrs"}, ShapeOther},
		{"five", []string{"a", "b", "c", "d", "e"}, ShapeOther},
		{"empty", nil, ShapeEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyCluster(tt.texts, dot); got != tt.want {
				t.Errorf("ClassifyCluster(%q) = %v, want %v", tt.texts, got, tt.want)
			}
		})
	}
}

func TestResolveCluster(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  Cluster
	}{
		{
			name:  "four is positional",
			texts: []string{"Engineer", "Acme Corp", "Jan 2020 - Present · 2 yrs", "Remote"},
			want:  Cluster{Shape: ShapeFour, Title: "Engineer", Organization: "Acme Corp", Dates: "Jan 2020 - Present · 2 yrs", Location: "Remote"},
		},
		{
			name:  "three dated has no location",
			texts: []string{"Engineer", "Acme Corp", "Jan 2020 - Present · 2 yrs"},
			want:  Cluster{Shape: ShapeThreeDated, Title: "Engineer", Organization: "Acme Corp", Dates: "Jan 2020 - Present · 2 yrs"},
		},
		{
			name:  "three undated has no title",
			texts: []string{"Acme Corp", "Jan 2020 - Present", "Remote"},
			want:  Cluster{Shape: ShapeThreeUndated, Organization: "Acme Corp", Dates: "Jan 2020 - Present", Location: "Remote"},
		},
		{
			name:  "single is organization",
			texts: []string{"Acme Corp"},
			want:  Cluster{Shape: ShapeSingle, Organization: "Acme Corp"},
		},
		{
			name:  "other takes first as organization",
			texts: []string{"Acme Corp", "Full-time · 5 yrs"},
			want:  Cluster{Shape: ShapeOther, Organization: "Acme Corp"},
		},
		{
			name:  "empty",
			texts: []string{},
			want:  Cluster{Shape: ShapeEmpty},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveCluster(tt.texts, dot); got != tt.want {
				t.Errorf("ResolveCluster(%q) = %+v, want %+v", tt.texts, got, tt.want)
			}
		})
	}
}

// Every combination of populated and blank leaves in a four-node cluster maps positionally.
func TestResolveClusterFourPermutations(t *testing.T) {
	values := [4]string{"Engineer", "Acme Corp", "Jan 2020 - Present · 2 yrs", "Remote"}
	for mask := 0; mask < 16; mask++ {
		texts := make([]string, 4)
		for i := range texts {
			if mask&(1<<i) != 0 {
				texts[i] = values[i]
			}
		}
		t.Run(fmt.Sprintf("mask=%04b", mask), func(t *testing.T) {
			want := Cluster{Shape: ShapeFour, Title: texts[0], Organization: texts[1], Dates: texts[2], Location: texts[3]}
			if got := ResolveCluster(texts, dot); got != want {
				t.Errorf("ResolveCluster(%q) = %+v, want %+v", texts, got, want)
			}
		})
	}
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		in   string
		want DateRange
	}{
		{"Jan 2019 - Present · 3 yrs", DateRange{From: "Jan 2019", To: "Present", Duration: "3 yrs"}},
		{"2021", DateRange{From: "2021"}},
		{"Jan 2019 - Dec 2020 · 2 yrs", DateRange{From: "Jan 2019", To: "Dec 2020", Duration: "2 yrs"}},
		{"Jan 2019 - Dec 2020", DateRange{From: "Jan 2019", To: "Dec 2020"}},
		{"2019-2021", DateRange{From: "2019-2021"}},
		{"2015 – 2019", DateRange{From: "2015", To: "2019"}},
		{"2019 - Present", DateRange{From: "2019", To: "Present"}},
		{"Jan 2019 · 3 mos", DateRange{From: "Jan 2019", Duration: "3 mos"}},
		{"  Mar 2018 - Jun 2018 ·  4 mos ", DateRange{From: "Mar 2018", To: "Jun 2018", Duration: "4 mos"}},
		{"", DateRange{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseDateRange(tt.in, dot); got != tt.want {
				t.Errorf("ParseDateRange(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveDescription(t *testing.T) {
	v := DefaultVocabulary()

	t.Run("plain text verbatim", func(t *testing.T) {
		doc := parse(t, `<div id="d"><span>Led the payments team.</span></div>`)
		detail := dom.FindFirst(doc, dom.Matcher{AttrKey: "id", AttrContains: "d"})
		if got := ResolveDescription(detail, v); got != "Led the payments team." {
			t.Errorf("ResolveDescription() = %q, want the text verbatim", got)
		}
	})

	t.Run("nested list one item per line", func(t *testing.T) {
		doc := parse(t, `<div id="d"><div class="pvs-list__container"><ul>
<li class="pvs-list__paged-list-item"><span>Built the API</span></li>
<li class="pvs-list__paged-list-item"><span>Ran on-call</span></li>
</ul></div></div>`)
		detail := dom.FindFirst(doc, dom.Matcher{AttrKey: "id", AttrContains: "d"})
		if got := ResolveDescription(detail, v); got != "Built the API\nRan on-call" {
			t.Errorf("ResolveDescription() = %q, want one item per line", got)
		}
	})

	t.Run("nil detail", func(t *testing.T) {
		if got := ResolveDescription(nil, v); got != "" {
			t.Errorf("ResolveDescription(nil) = %q, want empty", got)
		}
	})
}

func TestLeafTextPrefersVisibleSpan(t *testing.T) {
	doc := parse(t, `<div id="x">`+leaf("Engineer")+`</div>`)
	n := dom.FindFirst(doc, dom.Matcher{AttrKey: "id", AttrContains: "x"})
	if n == nil {
		t.Fatal("leaf holder not found")
	}
	if got := leafText(n, DefaultVocabulary()); got != "Engineer" {
		t.Errorf("leafText() = %q, want Engineer", got)
	}
}
