package services

import (
	"github.com/rxtech-lab/blink-launchpad/internal/models"
)

// FormBinding is what an editing surface is constructed from after a switch.
// Values is seeded from the preserved payload of Variant, never from defaults.
type FormBinding struct {
	Incarnation uint64            `json:"incarnation"`
	Variant     models.ActionType `json:"variant"`
	Values      any               `json:"values"`
}

// VariantSwitcher changes the active variant and hands out a fresh binding.
// The incarnation grows on every successful switch, including a switch to the
// variant that is already active, so bound surfaces always re-sync.
type VariantSwitcher struct {
	store       VariantStore
	incarnation uint64
}

func NewVariantSwitcher(store VariantStore) *VariantSwitcher {
	return &VariantSwitcher{store: store}
}

// Switch activates actionType. An unknown tag leaves both the store and the
// incarnation unchanged.
func (v *VariantSwitcher) Switch(actionType models.ActionType) (FormBinding, error) {
	snapshot, err := v.store.SetActive(actionType)
	if err != nil {
		return v.bindingFor(v.store.Get()), err
	}
	v.incarnation++
	return v.bindingFor(snapshot), nil
}

func (v *VariantSwitcher) Incarnation() uint64 {
	return v.incarnation
}

// Binding returns the binding of the current incarnation
func (v *VariantSwitcher) Binding() FormBinding {
	return v.bindingFor(v.store.Get())
}

func (v *VariantSwitcher) bindingFor(snapshot models.ActionConfig) FormBinding {
	var values any
	if payload := snapshot.Variant(snapshot.Type); payload != nil {
		values = payload
	}
	return FormBinding{
		Incarnation: v.incarnation,
		Variant:     snapshot.Type,
		Values:      values,
	}
}
