package Iservices

import "intellialert/internal/domain/dto"

// IBroadcaster fans a message out to every connected dashboard.
type IBroadcaster interface {
	Broadcast(message dto.BroadcastMessage)
}
