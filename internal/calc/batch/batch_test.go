package batch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"Barnframe/internal/calc/frame"
	"Barnframe/internal/design"
)

func TestLayout(t *testing.T) {
	var in Input
	for i := range 10 {
		d := design.New()
		d.StructureName = fmt.Sprintf("schuur %d", i)
		d.Dimensions.Length = float64(6 + i)
		in.Designs = append(in.Designs, d)
	}
	bad := design.New()
	bad.StructureName = "kapot"
	bad.Dimensions.RoofAngle = 0
	in.Designs = append(in.Designs, bad)

	res, err := Layout(context.Background(), in, frame.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Results) != 11 || res.Failed != 1 {
		t.Fatalf("results = %d, failed = %d", len(res.Results), res.Failed)
	}
	for i, e := range res.Results[:10] {
		if e.Name != fmt.Sprintf("schuur %d", i) {
			t.Errorf("result %d name = %q, order lost", i, e.Name)
		}
		if e.Error != "" || e.Members == 0 {
			t.Errorf("result %d = %+v", i, e)
		}
	}
	if res.Results[10].Error == "" {
		t.Error("invalid design did not report an error")
	}
}

func TestLayoutEmpty(t *testing.T) {
	if _, err := Layout(context.Background(), Input{}, frame.DefaultSettings()); !errors.Is(err, ErrNoItems) {
		t.Errorf("err = %v, want ErrNoItems", err)
	}
}

func TestLayoutCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	designs := make([]design.Design, 50)
	for i := range designs {
		designs[i] = design.New()
	}
	// a cancelled context may still let a few designs through before the feed stops
	if _, err := Layout(ctx, Input{Designs: designs}, frame.DefaultSettings()); err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
