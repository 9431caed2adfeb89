package order

import "strings"

// CodeFromUniqueID extracts the item code from a composite stock
// identifier of the form "project/location/code" or
// "project/location/parent/code". The last populated segment wins;
// the sentinel "None" marks an absent segment. Identifiers without
// separators are returned verbatim.
func CodeFromUniqueID(uniqueID string) string {
	parts := strings.Split(uniqueID, "/")
	if len(parts) >= 4 && parts[3] != "None" {
		return parts[3]
	}
	if len(parts) >= 3 && parts[2] != "None" {
		return parts[2]
	}
	if len(parts) >= 2 && parts[1] != "None" {
		return parts[1]
	}
	return uniqueID
}
