package stream

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/matt-g-everett/ledtween/anim"
)

func testController(t *testing.T) *anim.Controller {
	t.Helper()
	f, err := NewFixture(FixtureConfig{
		Prefix: "tree",
		Channels: []ChannelConfig{
			{Name: "brightness", Initial: anim.Scalar(1.5)},
			{Name: "colour", Kind: "color", Initial: anim.Value{1, 0, 0, 1}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	ctrl := anim.NewController()
	ctrl.ImportChannels(f, f.Prefix)
	return ctrl
}

func TestNewFrame(t *testing.T) {
	f := NewFrame(testController(t), 2)

	if f.Frames != 2 {
		t.Errorf("Frames = %f, want 2", f.Frames)
	}
	if len(f.Channels) != 2 {
		t.Fatalf("len(Channels) = %d, want 2", len(f.Channels))
	}
	if f.Channels[0].Name != "tree.brightness" || f.Channels[1].Name != "tree.colour" {
		t.Errorf("channel order = %s, %s", f.Channels[0].Name, f.Channels[1].Name)
	}
	if f.Channels[1].Hex != "#ff0000" {
		t.Errorf("Hex = %q, want #ff0000", f.Channels[1].Hex)
	}
	if f.Channels[0].Hex != "" {
		t.Errorf("scalar Hex = %q, want empty", f.Channels[0].Hex)
	}

	v, found := f.Value("tree.brightness")
	if !found || !v.Equal(anim.Scalar(1.5)) {
		t.Errorf("Value = %v, %v", v, found)
	}
	if _, found := f.Value("missing"); found {
		t.Error("found a missing channel")
	}
}

func TestFrameJSON(t *testing.T) {
	data, err := json.Marshal(NewFrame(testController(t), 1))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"hex":"#ff0000"`)) {
		t.Errorf("json = %s", data)
	}
	if !bytes.Contains(data, []byte(`{"name":"tree.brightness","kind":"linear","values":[1.5]}`)) {
		t.Errorf("json = %s", data)
	}
}

func TestFrameMarshalBinary(t *testing.T) {
	f := &Frame{Channels: []ChannelValue{
		{Name: "a", Values: []float64{1.5}},
		{Name: "bc", Values: []float64{-2, 0.5}},
	}}

	data, err := f.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	want := []byte{
		0x02, 0x00,
		0x01, 'a', 0x01, 0x00, 0x00, 0x00, 0xc0, 0x3f,
		0x02, 'b', 'c', 0x02, 0x00, 0x00, 0x00, 0x00, 0xc0, 0x00, 0x00, 0x00, 0x3f,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("data = % x\nwant % x", data, want)
	}
}

func TestFrameMarshalBinaryWideChannel(t *testing.T) {
	f := &Frame{Channels: []ChannelValue{{Name: "w", Values: make([]float64, 400)}}}

	data, err := f.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if n := binary.LittleEndian.Uint16(data[4:]); n != 400 {
		t.Errorf("component count = %d, want 400", n)
	}
	if len(data) != 2+1+1+2+400*4 {
		t.Errorf("len(data) = %d", len(data))
	}
}

func TestFrameMarshalBinaryTooLarge(t *testing.T) {
	tests := []ChannelValue{
		{Name: string(make([]byte, 256))},
		{Name: "w", Values: make([]float64, 1<<16)},
	}
	for _, cv := range tests {
		f := &Frame{Channels: []ChannelValue{cv}}
		if _, err := f.MarshalBinary(); err == nil {
			t.Errorf("expected an error for name length %d, %d components", len(cv.Name), len(cv.Values))
		}
	}
}
