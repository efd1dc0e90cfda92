package resolve

import "maps"

// Key identifies the sound wanted for one species form. An empty Form is the
// species' base sound.
type Key struct {
	Entity string
	Form   string
}

// String renders the key as "entity" or "entity-form".
func (k Key) String() string {
	if k.Form == "" {
		return k.Entity
	}
	return k.Entity + "-" + k.Form
}

// baseForm drops form names that always denote the base sound, in case a
// caller passes one through unfiltered.
func (k Key) baseForm() Key {
	switch k.Form {
	case "base", "teal":
		k.Form = ""
	}
	return k
}

// Override is a manual match for one key in one pool. Silent marks the key as
// known to have no asset in that pool.
type Override struct {
	Asset  string
	Silent bool
}

// Overrides is a read-only manual match table.
type Overrides map[Key]Override

// With returns a copy of o with extra entries layered on top.
func (o Overrides) With(extra Overrides) Overrides {
	out := make(Overrides, len(o)+len(extra))
	maps.Copy(out, o)
	maps.Copy(out, extra)
	return out
}

func asset(name string) Override { return Override{Asset: name} }

var silent = Override{Silent: true}

// DefaultPrimaryOverrides returns the built-in manual matches for the .ogg pool.
// Assets are file stems inside the pool directory.
func DefaultPrimaryOverrides() Overrides {
	return Overrides{
		{Entity: "hooh"}:        asset("ho-oh"),
		{Entity: "persian"}:     asset("persain"),
		{Entity: "milotic"}:     asset("milotic1"),
		{Entity: "whismur"}:     asset("whismur1"),
		{Entity: "mimejr"}:      asset("mime_jr"),
		{Entity: "brutebonnet"}: asset("brute_bonnet"),
		{Entity: "hakamo-o"}:    asset("hakamoo"),
		{Entity: "porygon-z"}:   asset("porygonz"),
		{Entity: "irontreads"}:  asset("ironthreads"),
		{Entity: "cryogonal"}:   asset("cryoganal"),

		{Entity: "indeedee", Form: "male"}:         asset("indeedeem"),
		{Entity: "urshifu", Form: "singlestrike"}:  silent,
		{Entity: "hoopa", Form: "confined"}:        asset("hoopa"),
		{Entity: "shaymin", Form: "land"}:          asset("shaymin"),
		{Entity: "zygarde", Form: "complete"}:      asset("zygarde-100"),
		{Entity: "zygarde", Form: "fifty_percent"}: asset("zygarde-50"),
		{Entity: "zygarde", Form: "ten_percent"}:   asset("zygarde-10"),
		{Entity: "calyrex", Form: "icerider"}:      asset("calyrex-ice_rider"),
		{Entity: "calyrex", Form: "shadowrider"}:   asset("calyrex-shadow_rider"),
	}
}

// DefaultFuzzyOverrides returns the built-in manual matches for the .wav pool.
// Assets are file stems inside the pool directory.
func DefaultFuzzyOverrides() Overrides {
	return Overrides{
		{Entity: "pikachu"}:           asset("025 - Pikachu (01)"),
		{Entity: "ursalunabloodmoon"}: asset("901B - Ursaluna (Bloodmoon)"),
		{Entity: "koraidon"}:          asset("1007AB - Koraidon (Apex Build)"),
		{Entity: "miraidon"}:          asset("1008UM - Miraidon (Ultimate Mode)"),
		{Entity: "zacian"}:            asset("888H - Zacian (Hero of Many Battles)"),
		{Entity: "zamazenta"}:         asset("889H - Zamazenta (Hero of Many Battles)"),
		{Entity: "meltan"}:            silent,
		{Entity: "melmetal"}:          silent,

		{Entity: "zacian", Form: "crowned"}:       asset("888C - Zacian (Crowned Sword)"),
		{Entity: "zamazenta", Form: "crowned"}:    asset("889C - Zamazenta (Crowned Shield)"),
		{Entity: "floette", Form: "az"}:           asset("670E - Floette (Eternal)"),
		{Entity: "urshifu", Form: "rapidstrike"}:  asset("892RS - Urshifu (Rapid Strike)"),
		{Entity: "urshifu", Form: "singlestrike"}: asset("892SS - Urshifu (Single Strike)"),
	}
}
