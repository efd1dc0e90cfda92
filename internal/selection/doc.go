// Package selection decides which forms of a species receive a new sound and
// under which name.
//
// A Policy is built once from configuration and is read-only afterwards, so a
// single instance is shared by every worker. Plan walks a species' forms in
// declaration order and yields one Target per form that should be resolved.
// A Target with an empty EffectiveForm is the species' base sound.
//
// Per-species skip rules are expressed as a FormRule, a closed variant with
// three constructors: SkipAll, SkipForms and SkipAllExcept.
package selection
