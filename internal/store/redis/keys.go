package redis

const (
	// KeyRecords is the ordered list of JSON-encoded record rows
	KeyRecords = "secdash:records"
	// KeyPrefixView is the prefix for cached view keys
	KeyPrefixView = "secdash:view:"
)

// RecordsKey returns the Redis key holding the record collection
func RecordsKey() string {
	return KeyRecords
}

// ViewKey returns the Redis key for a cached view.
// fingerprint identifies the record collection the view was computed from,
// query is the canonical form of the query state.
func ViewKey(fingerprint, query string) string {
	return KeyPrefixView + fingerprint + ":" + query
}
