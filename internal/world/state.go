// SPDX-License-Identifier: MIT

package world

// State is the single mutable container owning all players, stones,
// towers, clouds, destruction sequences, and cloud return paths
// (spec.md §3 "World State"). It is analogous to mk48's world/single
// package: a flat map-based store scanned in O(N·M), appropriate because
// spec.md explicitly puts spatial partitioning out of scope.
//
// State is not safe for concurrent use. Per spec.md §5, it is owned
// exclusively by the hub's single event-loop goroutine; nothing else ever
// touches it directly. This mirrors mk48's Hub, which serializes all
// World mutation through one goroutine's channel select rather than a
// mutex.
type State struct {
	Terrain *Terrain

	sessions map[PlayerID]*Session
	stones   map[StoneID]*Stone

	towers      map[TowerID]*Tower
	towerOrder  []TowerID // iteration order, §4.6 "towers are iterated in order"

	clouds map[CloudID]*Cloud

	sequences   map[CloudID]*DestructionSequence
	returnPaths map[CloudID]*ReturnPath
}

// NewState constructs an empty World State over the given terrain.
func NewState(terrain *Terrain) *State {
	return &State{
		Terrain:     terrain,
		sessions:    make(map[PlayerID]*Session),
		stones:      make(map[StoneID]*Stone),
		towers:      make(map[TowerID]*Tower),
		clouds:      make(map[CloudID]*Cloud),
		sequences:   make(map[CloudID]*DestructionSequence),
		returnPaths: make(map[CloudID]*ReturnPath),
	}
}

// --- Sessions ---

func (s *State) AddSession(session *Session) { s.sessions[session.ID] = session }
func (s *State) Session(id PlayerID) *Session { return s.sessions[id] }
func (s *State) RemoveSession(id PlayerID)    { delete(s.sessions, id) }
func (s *State) SessionCount() int            { return len(s.sessions) }

func (s *State) ForEachSession(f func(*Session)) {
	for _, session := range s.sessions {
		f(session)
	}
}

// ForEachOtherSession visits every session except the one with id except.
func (s *State) ForEachOtherSession(except PlayerID, f func(*Session)) {
	for id, session := range s.sessions {
		if id == except {
			continue
		}
		f(session)
	}
}

// --- Stones ---

func (s *State) AddStone(stone *Stone) { s.stones[stone.ID] = stone }
func (s *State) Stone(id StoneID) *Stone { return s.stones[id] }
func (s *State) RemoveStone(id StoneID) { delete(s.stones, id) }
func (s *State) StoneCount() int        { return len(s.stones) }

func (s *State) ForEachStone(f func(*Stone)) {
	for _, stone := range s.stones {
		f(stone)
	}
}

// --- Towers ---

func (s *State) AddTower(tower *Tower) {
	s.towers[tower.ID] = tower
	s.towerOrder = append(s.towerOrder, tower.ID)
}

func (s *State) Tower(id TowerID) *Tower { return s.towers[id] }

// TowerIndex returns the index of id within iteration order, or -1.
func (s *State) TowerIndex(id TowerID) int {
	for i, towerID := range s.towerOrder {
		if towerID == id {
			return i
		}
	}
	return -1
}

// RemoveTower deletes the tower and returns the index it occupied, or -1
// if it did not exist. Callers broadcast tower_destroy with this index
// per spec.md §6.
func (s *State) RemoveTower(id TowerID) int {
	idx := s.TowerIndex(id)
	if idx < 0 {
		return -1
	}
	delete(s.towers, id)
	s.towerOrder = append(s.towerOrder[:idx], s.towerOrder[idx+1:]...)
	return idx
}

func (s *State) TowerCount() int { return len(s.towers) }

// ForEachTowerInOrder visits towers in the order required by §4.6 Phase A
// ("towers are iterated in order since first match wins").
func (s *State) ForEachTowerInOrder(f func(*Tower)) {
	for _, id := range s.towerOrder {
		if t := s.towers[id]; t != nil {
			f(t)
		}
	}
}

// --- Clouds ---

func (s *State) AddCloud(cloud *Cloud)     { s.clouds[cloud.ID] = cloud }
func (s *State) Cloud(id CloudID) *Cloud   { return s.clouds[id] }
func (s *State) CloudCount() int           { return len(s.clouds) }

func (s *State) ForEachCloud(f func(*Cloud)) {
	for _, cloud := range s.clouds {
		f(cloud)
	}
}

// --- Destruction sequences & return paths ---

func (s *State) StartSequence(seq *DestructionSequence) { s.sequences[seq.CloudID] = seq }
func (s *State) Sequence(cloudID CloudID) *DestructionSequence { return s.sequences[cloudID] }
func (s *State) EndSequence(cloudID CloudID)             { delete(s.sequences, cloudID) }

// TowerHasActiveSequence reports whether any active sequence already
// targets towerID, enforcing the §4.7 invariant "a tower is the target of
// at most one active sequence."
func (s *State) TowerHasActiveSequence(towerID TowerID) bool {
	for _, seq := range s.sequences {
		if seq.TowerID == towerID {
			return true
		}
	}
	return false
}

func (s *State) ForEachSequence(f func(*DestructionSequence)) {
	for _, seq := range s.sequences {
		f(seq)
	}
}

func (s *State) StartReturnPath(path *ReturnPath) { s.returnPaths[path.CloudID] = path }
func (s *State) ReturnPath(cloudID CloudID) *ReturnPath { return s.returnPaths[cloudID] }
func (s *State) EndReturnPath(cloudID CloudID)    { delete(s.returnPaths, cloudID) }
