package itemlist

import (
	"fmt"
	"io"
	"strings"
)

type FeatureView struct {
	Model *FeatureModel
}

func (v FeatureView) Render(w io.Writer) error {
	var b strings.Builder
	items := v.Model.Items()
	if len(items) == 0 {
		b.WriteString("No items yet\n")
	}
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	b.WriteString("[Add Item]\n")

	_, err := io.WriteString(w, b.String())
	return err
}
