package core

import "testing"

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	alice := identity("u1", "alice", KindCustomer)
	c := NewClient("conn-1")

	reg.Register(alice, c)

	got, ok := reg.Lookup("u1")
	if !ok || got != c {
		t.Fatalf("expected lookup to return registered handle")
	}
	if _, ok := reg.Lookup("u2"); ok {
		t.Fatalf("expected unknown identity to be not found")
	}
}

func TestRegistrySupersession(t *testing.T) {
	reg := NewRegistry()
	alice := identity("u1", "alice", KindCustomer)
	old := NewClient("conn-old")
	newer := NewClient("conn-new")

	reg.Register(alice, old)
	reg.Register(alice, newer)

	got, ok := reg.Lookup("u1")
	if !ok || got != newer {
		t.Fatalf("expected newer handle to win, got %+v", got)
	}

	// Disconnecting the superseded handle must not remove the newer mapping.
	if _, ok := reg.Unregister(old); ok {
		t.Fatalf("expected superseded handle to be unknown on unregister")
	}
	if got, ok := reg.Lookup("u1"); !ok || got != newer {
		t.Fatalf("supersession safety violated: newer mapping removed")
	}

	id, ok := reg.Unregister(newer)
	if !ok || id.ID != "u1" {
		t.Fatalf("expected current handle unregister to return identity, got %+v ok=%v", id, ok)
	}
	if _, ok := reg.Lookup("u1"); ok {
		t.Fatalf("expected identity gone after unregister")
	}
}

func TestRegistryUnregisterUnknownHandle(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Unregister(NewClient("ghost")); ok {
		t.Fatalf("expected unknown handle unregister to be a no-op")
	}
}

func TestRegistryClientsByKind(t *testing.T) {
	reg := NewRegistry()
	admin := NewClient("c-admin")
	agent := NewClient("c-agent")
	customer := NewClient("c-cust")

	reg.Register(identity("a1", "ops", KindAdmin), admin)
	reg.Register(identity("d1", "courier", KindDeliveryAgent), agent)
	reg.Register(identity("u1", "alice", KindCustomer), customer)

	admins := reg.ClientsByKind(KindAdmin)
	if len(admins) != 1 || admins[0] != admin {
		t.Fatalf("expected exactly the admin handle, got %d", len(admins))
	}
}
