// AngelaMos | 2026
// ids.go

package legacy

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var namespace = uuid.MustParse("6f1c3e2a-9b4d-5c8e-a7f0-2d3b4c5e6f70")

// MapID derives a stable UUID from an ObjectID, so re-running the import
// produces the same keys and references resolve without a lookup table.
func MapID(kind string, oid bson.ObjectID) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+oid.Hex())).String()
}

func mapOptionalID(kind string, oid *bson.ObjectID) *string {
	if oid == nil || oid.IsZero() {
		return nil
	}
	id := MapID(kind, *oid)
	return &id
}
