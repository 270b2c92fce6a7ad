/*
Package authsdk is the Go client for the devconnect auth API.

An SDKClient talks to one server and carries at most one session token,
which it attaches to every request it sends once set:

	client := authsdk.NewSDKClient("http://localhost:8080")

	token, err := client.Login(ctx, "ada@example.com", "secret1")
	if err != nil {
		var apiErr *authsdk.APIError
		if errors.As(err, &apiErr) {
			// apiErr.Messages holds the server's {"errors": [...]} entries
		}
		return err
	}

	client.SetToken(token)
	account, err := client.CurrentAccount(ctx)

Login and Register do not attach the token they return; callers decide
where the token lives (see package session) and call SetToken themselves.

All methods are safe for concurrent use.
*/
package authsdk
