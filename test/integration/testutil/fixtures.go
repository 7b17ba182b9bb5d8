//go:build integration

package testutil

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"staynest/pkg/client"
	"staynest/pkg/model"
)

// PNG is the smallest byte stream content sniffing accepts as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func ValidPlace() model.PlaceRequest {
	return model.PlaceRequest{
		Title:        "Cabin by the lake",
		Address:      "1 Lake Road",
		AddPhotos:    []string{"cabin.jpg"},
		Description:  "Quiet wooden cabin",
		Perks:        []string{"wifi", "parking"},
		ExtraInfo:    "No parties",
		CheckInTime:  14,
		CheckOutTime: 11,
		MaxGuest:     4,
		Price:        120,
	}
}

func ValidBooking(placeID string) model.BookingRequest {
	return model.BookingRequest{
		Place:          placeID,
		Name:           "Jane Guest",
		CheckIn:        "2030-07-01",
		CheckOut:       "2030-07-05",
		Phone:          "+14155550100",
		Price:          480,
		NumberOfGuests: 2,
	}
}

// SignedIn registers a fresh account on c and logs it in.
func SignedIn(t *testing.T, c *client.StaynestClient, prefix string) model.User {
	t.Helper()

	email := UniqueEmail(prefix)
	resp, err := c.Register(prefix, email, "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	AssertStatusCode(t, resp, http.StatusOK)

	resp, err = c.Login(email, "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	AssertStatusCode(t, resp, http.StatusOK)

	var user model.User
	if err := resp.DecodeJSON(&user); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return user
}

func CreatePlace(t *testing.T, c *client.StaynestClient, req model.PlaceRequest) model.Place {
	t.Helper()

	resp, err := c.CreatePlace(req)
	if err != nil {
		t.Fatalf("create place: %v", err)
	}
	AssertStatusCode(t, resp, http.StatusOK)

	var place model.Place
	if err := resp.DecodeJSON(&place); err != nil {
		t.Fatalf("failed to decode place: %v", err)
	}
	return place
}

func AssertStatusCode(t *testing.T, resp *client.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, string(resp.Body))
	}
}

func AssertErrorCode(t *testing.T, resp *client.Response, want string) {
	t.Helper()
	if got := client.GetErrorCode(resp); got != want {
		t.Errorf("expected error code %q, got %q", want, got)
	}
}
