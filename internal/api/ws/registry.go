package ws

import "github.com/fikadu-bingo/bingo-server/internal/room"

// GameRegistry is what the hub needs from the room layer: resolving a stake
// tier to its room.
type GameRegistry interface {
	Get(stake int) (*room.Room, bool)
}
