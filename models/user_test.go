package models

import "testing"

func TestUserCanAccess(t *testing.T) {
	u := User{Username: "kofi", School: "knust"}

	if !u.CanAccess(RoomGeneral) {
		t.Error("general room should be accessible to everyone")
	}
	if !u.CanAccess("knust") {
		t.Error("own school room should be accessible")
	}
	if u.CanAccess("upsa") {
		t.Error("another school's room should not be accessible")
	}
}

func TestUserAllowedRooms(t *testing.T) {
	u := User{Username: "kofi", School: "knust"}
	rooms := u.AllowedRooms()
	if len(rooms) != 2 || rooms[0] != RoomGeneral || rooms[1] != "knust" {
		t.Errorf("AllowedRooms = %v, want [general knust]", rooms)
	}

	// a general-affiliated user has a single room
	g := User{Username: "drifter", School: RoomGeneral}
	if rooms := g.AllowedRooms(); len(rooms) != 1 || rooms[0] != RoomGeneral {
		t.Errorf("AllowedRooms = %v, want [general]", rooms)
	}
}
