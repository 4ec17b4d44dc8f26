package anim

import (
	"errors"
	"math"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestDefinitionFromYAML(t *testing.T) {
	src := `
loop: true
initialValue: -5
segments:
  - [0, 120, linear]
  - [5, 120, quadraticIn]
  - [-15, 240, quadraticOut, 2]
`
	var d Definition
	if err := yaml.Unmarshal([]byte(src), &d); err != nil {
		t.Fatal(err)
	}

	if !d.Loop {
		t.Error("Loop = false, want true")
	}
	if !d.InitialValue.Equal(Scalar(-5)) {
		t.Errorf("InitialValue = %v, want [-5]", d.InitialValue)
	}
	if len(d.Segments) != 3 {
		t.Fatalf("len(Segments) = %d, want 3", len(d.Segments))
	}

	last := d.Segments[2]
	if !last.End.Equal(Scalar(-15)) || last.Duration != 240 || last.Easing != "quadraticOut" {
		t.Errorf("last segment = %+v", last)
	}
	if !last.Start.Equal(Scalar(2)) {
		t.Errorf("last segment start = %v, want [2]", last.Start)
	}
	if d.Segments[0].Start != nil {
		t.Errorf("first segment start = %v, want nil", d.Segments[0].Start)
	}
	if d.Length() != 480 {
		t.Errorf("Length = %f, want 480", d.Length())
	}
}

func TestDefinitionBareConstants(t *testing.T) {
	tests := []struct {
		src  string
		want Value
	}{
		{`3.5`, Scalar(3.5)},
		{`[1, 2, 3, 4]`, Value{1, 2, 3, 4}},
		{`"#ff0000"`, Value{1, 0, 0, 1}},
		{`constant: 7`, Scalar(7)},
	}

	for _, tt := range tests {
		var d Definition
		if err := yaml.Unmarshal([]byte(tt.src), &d); err != nil {
			t.Errorf("%s: %v", tt.src, err)
			continue
		}
		if !d.Constant.Equal(tt.want) {
			t.Errorf("%s: Constant = %v, want %v", tt.src, d.Constant, tt.want)
		}
		if d.Segments != nil {
			t.Errorf("%s: unexpected segments", tt.src)
		}
		if !math.IsInf(d.Length(), 1) {
			t.Errorf("%s: Length = %f, want infinite", tt.src, d.Length())
		}
	}
}

func TestSegmentInfiniteDuration(t *testing.T) {
	var d Definition
	if err := yaml.Unmarshal([]byte("segments: [[4, .inf]]"), &d); err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(d.Segments[0].Duration, 1) {
		t.Errorf("Duration = %f, want +Inf", d.Segments[0].Duration)
	}
}

func TestDefinitionYAMLErrors(t *testing.T) {
	for _, src := range []string{
		`segments: [[1]]`,
		`segments: [[1, 2, 3]]`,
		`segments: [[1, fast]]`,
		`"not a colour"`,
		`initialValue: [1, x]`,
	} {
		var d Definition
		err := yaml.Unmarshal([]byte(src), &d)
		if !errors.Is(err, ErrMalformedDefinition) {
			t.Errorf("%s: err = %v, want ErrMalformedDefinition", src, err)
		}
	}
}

func TestDefinitionInitial(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want Value
		ok   bool
	}{
		{"initial", Definition{InitialValue: Scalar(1), Constant: Scalar(2)}, Scalar(1), true},
		{"constant", Definition{Constant: Scalar(2)}, Scalar(2), true},
		{"first start", Definition{Segments: []Segment{{End: Scalar(1), Start: Scalar(3)}}}, Scalar(3), true},
		{"none", Definition{Segments: []Segment{{End: Scalar(1)}}}, nil, false},
	}

	for _, tt := range tests {
		got, ok := tt.def.Initial()
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("%s: Initial = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDefinitionWithoutInitialHoldsLiveValue(t *testing.T) {
	x := 6.0
	c := newFloatChannel(&x)
	err := c.ImportAnimation("drift", &Definition{
		Segments: []Segment{{End: Scalar(10), Duration: 4}},
	})
	if err != nil {
		t.Fatal(err)
	}
	c.Play()

	if err := c.Transition("drift", TransitionOptions{Duration: 2}); err != nil {
		t.Fatal(err)
	}
	c.Update(2)
	if x != 6 {
		t.Errorf("x = %f, want 6 while the bridge holds", x)
	}
	c.Update(2)
	if x != 8 {
		t.Errorf("x = %f, want 8", x)
	}
}

func TestParseColor(t *testing.T) {
	v, err := ParseColor("#0000ff")
	if err != nil {
		t.Fatal(err)
	}
	if !v.Equal(Value{0, 0, 1, 1}) {
		t.Errorf("ParseColor = %v, want [0 0 1 1]", v)
	}

	c, alpha := ToColor(Value{0.5, 0.25, 0, 0.75})
	if c.R != 0.5 || c.G != 0.25 || c.B != 0 || alpha != 0.75 {
		t.Errorf("ToColor = %v, %f", c, alpha)
	}

	if _, err := ParseColor("red"); !errors.Is(err, ErrMalformedDefinition) {
		t.Errorf("err = %v, want ErrMalformedDefinition", err)
	}
}
