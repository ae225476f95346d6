// SPDX-License-Identifier: MIT

package world

import "github.com/google/uuid"

// All IDs are string-typed, UUID-backed, and opaque — mk48 allocates small
// integer EntityIDs against its own map via AllocateEntityID; Tidekeep has
// no tight wire-size budget (no bandwidth-critical fog-of-war packing like
// mk48's Contact stream) so UUIDs keep the code simpler and collision-free
// across sessions, stones, towers, and clouds without a shared counter.
type (
	StoneID  string
	TowerID  string
	CloudID  string
	PlayerID string
)

func NewStoneID() StoneID   { return StoneID(uuid.NewString()) }
func NewTowerID() TowerID   { return TowerID(uuid.NewString()) }
func NewCloudID() CloudID   { return CloudID(uuid.NewString()) }
func NewPlayerID() PlayerID { return PlayerID(uuid.NewString()) }
