// SPDX-License-Identifier: MIT

package hub

import "tidekeep/internal/world"

// Client is a connected actor on the Hub, mirroring mk48's server/client.go
// Client/ClientData/ClientList trio. Unlike mk48, a Client has no session
// until its first player_join message succeeds — SessionID is empty until
// then.
type (
	Client interface {
		Close()
		Data() *ClientData
		Destroy()
		Init()
		Send(out interface{})
	}

	ClientData struct {
		SessionID world.PlayerID
		Hub       *Hub
		Previous  Client
		Next      Client
	}

	// ClientList is a doubly-linked list of Clients, iterable as:
	// for c := list.First; c != nil; c = c.Data().Next {}
	// Hub.StatusJSON reports state.SessionCount and the ActiveConnections
	// gauge counts connections itself, so the list carries no count of its
	// own.
	ClientList struct {
		First Client
		Last  Client
	}
)

func (list *ClientList) Add(client Client) {
	data := client.Data()
	if data.Previous != nil || data.Next != nil {
		panic("hub: client added to ClientList twice")
	}

	if list.First == nil {
		list.First = client
	} else {
		list.Last.Data().Next = client
		data.Previous = list.Last
	}

	list.Last = client
}

// Remove removes a Client from the list and returns the next element.
func (list *ClientList) Remove(client Client) (next Client) {
	data := client.Data()

	if data.Previous != nil {
		data.Previous.Data().Next = data.Next
	} else if list.First == client {
		list.First = data.Next
	} else {
		panic("hub: client not in ClientList")
	}

	if data.Next != nil {
		data.Next.Data().Previous = data.Previous
	} else if list.Last == client {
		list.Last = data.Previous
	} else {
		panic("hub: client not in ClientList")
	}

	next = data.Next
	data.Next = nil
	data.Previous = nil
	return
}
