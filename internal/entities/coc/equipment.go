package coc

// EquipmentDef is a catalog entry for a purchasable item
type EquipmentDef struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Price    int    `json:"price" yaml:"price"`
	Eras     []Era  `json:"eras,omitempty" yaml:"eras,omitempty"`
}

// InEra reports whether the item is available in the era
func (e *EquipmentDef) InEra(era Era) bool {
	if len(e.Eras) == 0 {
		return true
	}
	for _, candidate := range e.Eras {
		if candidate == era {
			return true
		}
	}
	return false
}

// EquipmentItem is an item carried by a character. Items priced at or below
// the wealth bracket's spending level cost nothing; pricier items count
// against cash on hand.
type EquipmentItem struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
}
