package repository

// Demo collaborators. The key is hard coded and must never protect real data.
const (
	// DemoField is the only field known to the demo collaborators.
	DemoField = "email"

	demoKey = "XCGkaWfQQ9TQyfDLVKebYdH"
)

// DemoValues returns the sample identifiers of the demo field.
func DemoValues() []string {
	return []string{
		"amelia@erhardt.fm",
		"James.Hoffa@floor.lakemi.us",
		"db_cooper@rocky_mtn.high.co.us",
	}
}

// NewDemoKeyStore returns an in-memory key store holding the demo field key.
func NewDemoKeyStore() *MemoryKeyStore {
	store, err := NewMemoryKeyStore(map[string][]byte{DemoField: []byte(demoKey)})
	if err != nil {
		panic(err)
	}
	return store
}

// NewDemoDataSource returns an in-memory data source holding the demo values.
func NewDemoDataSource() *MemoryDataSource {
	ds, err := NewMemoryDataSource(map[string][]string{DemoField: DemoValues()})
	if err != nil {
		panic(err)
	}
	return ds
}
