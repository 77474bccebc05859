/*
Package churchsdk provides a Go client for the New Creature Church API.

# Overview

The package is organized around two main types:

  - Client: public operations and the entry points that open sessions
  - Session: authenticated operations with automatic token refresh

Create a Client for public endpoints and to authenticate:

	client := churchsdk.NewClient("https://church.example.com")

	// Check service health
	health, err := client.Liveness(ctx)

	// Browse the public calendar and sermon archive
	events, err := client.ListEvents(ctx)
	sermons, err := client.ListSermons(ctx)

	// Authenticate to open a session
	session, err := client.Login(ctx, "grace@example.com", password)

Use a Session for member operations. Sessions refresh their access token
automatically shortly before it expires:

	me, err := session.Profile(ctx)
	event, err := session.JoinEvent(ctx, eventID)
	request, err := session.CreatePrayerRequest(ctx, churchsdk.PrayerRequestInput{
		Title:    "Healing",
		Category: "personal",
	})

# Errors

Failed requests return an *APIError carrying the HTTP status and the
machine-readable code the server responded with:

	_, err := client.Login(ctx, email, password)
	if churchsdk.IsCode(err, "INVALID_CREDENTIALS") {
		// wrong email or password
	}

Because every refresh consumes the presented refresh token, a stored session
resumed with SessionFromTokens must use the most recent pair; replaying an
already-consumed refresh token fails with INVALID_REFRESH_TOKEN.
*/
package churchsdk
