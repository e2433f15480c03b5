package form_test

import (
	"context"
	"fmt"

	"github.com/reoring/parcelform"
	"github.com/reoring/parcelform/form"
)

func Example() {
	ctx := context.Background()
	f, err := form.New(parcelform.Standard)
	if err != nil {
		panic(err)
	}
	_ = f.Toggle("Notice of delivery", true)

	// switching category rebuilds the checklist, nothing stays checked
	_ = f.SetCategory(parcelform.Letter)
	fmt.Println(parcelform.CheckedNames(f.Options()))

	_, err = f.Submit(ctx, form.Fields{CityFrom: "Kyiv2", CityTo: "Lviv"})
	iss, _ := parcelform.AsIssues(err)
	for _, it := range iss {
		fmt.Println(it.Field, it.Code, it.Message)
	}

	sh, _ := f.Submit(ctx, form.Fields{CityFrom: "Kyiv", CityTo: "Lviv", Weight: parcelform.Text("20")})
	fmt.Println(sh.Weight, sh.TheBiggestSide == nil, sh.Price == nil)
	// Output:
	// []
	// cityFrom pattern Invalid city name
	// weight required weight is a required field
	// 20 true true
}
