package i18n

import (
	"fmt"

	"github.com/reoring/parcelform"
)

// Fill sets the Message of every issue that has none, using tr (the current
// Translator when nil). The field name and params are exposed as placeholders.
func Fill(tr Translator, iss parcelform.Issues) parcelform.Issues {
	if tr == nil {
		tr = Current()
	}
	for i := range iss {
		if iss[i].Message != "" {
			continue
		}
		data := map[string]string{"field": string(iss[i].Field)}
		for k, v := range iss[i].Params {
			data[k] = fmt.Sprint(v)
		}
		iss[i].Message = tr.Message(iss[i].Code, data)
	}
	return iss
}
