// Package gmail provides a client for interacting with the Gmail API.
//
// The client covers the operations the agent dispatches:
//   - Listing unread inbox messages with decoded bodies
//   - Retrieving a single message by ID
//   - Sending plain-text or HTML email (RFC 2822, base64url raw send)
//
// Authentication uses the shared OAuth token from the google package.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := gmail.NewClient(ctx, oauthConf)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// List unread messages
//	unread, err := client.ListUnread(ctx, 5)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Send an email
//	msg := &gmail.EmailMessage{
//	    To:      []string{"recipient@example.com"},
//	    Subject: "Hello",
//	    Body:    "This is a test email",
//	}
//	msgID, err := client.SendEmail(ctx, msg)
package gmail
