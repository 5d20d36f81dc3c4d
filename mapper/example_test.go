package mapper_test

import (
	"fmt"

	"objects-mixer/mapper"
	"objects-mixer/mixer"
)

func ExampleInto() {
	type Wall struct {
		Name    string
		Qty     int
		QtyView string `mix:"Qty View"`
	}

	left := map[string]any{"Name": "north", "Qty": "", "Qty View": "{Qty}*2"}
	right := map[string]any{"Name": "north", "Qty": "5", "Qty View": "10"}

	merged, err := mixer.Merge(left, right)
	if err != nil {
		fmt.Println(err)
		return
	}

	wall, err := mapper.Into[Wall](merged)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%+v\n", wall)
	// Output:
	// {Name:north Qty:5 QtyView:{Qty}*2}
}
