// Package protocol implements the wire-format gateway described in
// spec.md §6: the inbound/outbound JSON message catalogue, envelope
// framing, and translation between internal/sim events and outbound wire
// structs. It mirrors mk48's server/message.go type-registry pattern
// (messageType keyed by the Go type name, uncapitalized) but drops mk48's
// unsafe.Pointer custom jsoniter codecs, which existed there to bit-pack
// EntityID/Angle/Ticks types this domain doesn't have.
package protocol

import (
	"fmt"
	"reflect"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Inbound is a decoded client intent, dispatched to internal/sim by the
// hub's single event-loop goroutine.
type Inbound interface {
	// Process applies the message against session sessionID, appending any
	// resulting sim.Event values through Dispatcher.
	Process(d Dispatcher, sessionID string)
}

var inboundTypes = make(map[string]reflect.Type)

func registerInbound(values ...Inbound) {
	for _, v := range values {
		t := reflect.TypeOf(v)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		inboundTypes[uncapitalize(t.Name())] = t
	}
}

func uncapitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// envelope is the wire framing for both directions: {"type": "...", "data": {...}}.
type envelope struct {
	Type string          `json:"type"`
	Data jsoniter.RawMessage `json:"data"`
}

// DecodeInbound parses one client frame into a concrete Inbound value.
func DecodeInbound(raw []byte) (Inbound, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("protocol: decode envelope: %w", err)
	}

	t, ok := inboundTypes[env.Type]
	if !ok {
		return nil, fmt.Errorf("protocol: unknown inbound type %q", env.Type)
	}

	value := reflect.New(t)
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, value.Interface()); err != nil {
			return nil, fmt.Errorf("protocol: decode %s: %w", env.Type, err)
		}
	}

	return value.Interface().(Inbound), nil
}

// outboundTypeName returns the wire "type" string for an outbound value,
// derived the same way mk48 derives messageType: the Go type name,
// uncapitalized.
func outboundTypeName(v interface{}) string {
	t := reflect.TypeOf(v)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return uncapitalize(t.Name())
}

// EncodeOutbound frames an outbound wire struct for transmission.
func EncodeOutbound(v interface{}) ([]byte, error) {
	return json.Marshal(struct {
		Type string      `json:"type"`
		Data interface{} `json:"data"`
	}{Type: outboundTypeName(v), Data: v})
}
