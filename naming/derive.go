package naming

// Metadata fields the derived variables are computed from.
const (
	FieldCreateDate = "CreateDate"
	FieldFileName   = "FileName"
	FieldModel      = "Model"
)

// KeyModel exposes the camera model under a short code.
const KeyModel = "T2"

// Derive computes the derived variables of record. record is not modified.
func Derive(record Vars) Vars {
	vars := make(Vars)
	if createDate, ok := record[FieldCreateDate]; ok {
		for k, v := range DeriveDateVars(createDate) {
			vars[k] = v
		}
	}
	if filename, ok := record[FieldFileName]; ok {
		for k, v := range DeriveFileVars(filename) {
			vars[k] = v
		}
	}
	if model, ok := record[FieldModel]; ok {
		vars[KeyModel] = model
	}
	return vars
}

// Variables returns the full variable set for record: the derived
// variables overlaid with the raw record.
func Variables(record Vars) Vars {
	return Merge(Derive(record), record)
}
