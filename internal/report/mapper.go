package report

// MapRecords projects every raw record onto the layout's columns. A column
// missing from the raw record takes the column default. Order and count are
// preserved.
func MapRecords(layout Layout, raw []RawRecord) []MappedRecord {
	mapped := make([]MappedRecord, 0, len(raw))
	for _, item := range raw {
		rec := make(MappedRecord, len(layout.Columns))
		for i, c := range layout.Columns {
			value, ok := item[c.Key]
			if !ok {
				value = c.Default
			}
			rec[i] = Field{Name: c.Key, Value: value}
		}
		mapped = append(mapped, rec)
	}
	return mapped
}

// Map resolves the layout for kind and variant and maps raw onto it.
func Map(kind Kind, variant string, raw []RawRecord) ([]MappedRecord, error) {
	layout, err := LayoutFor(kind, variant)
	if err != nil {
		return nil, err
	}
	return MapRecords(layout, raw), nil
}
