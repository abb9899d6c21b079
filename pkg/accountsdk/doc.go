// Package accountsdk is a Go client for the accounts service.
//
// Register, Verify and Login report business outcomes as a Result with
// Success set to false; those are not errors. Transport failures, validation
// rejections and 4xx/5xx responses come back as an *APIError.
//
//	c := accountsdk.NewClient("http://localhost:8080")
//	res, err := c.Login(ctx, accountsdk.LoginRequest{Login: "alice", Password: "s3cretpass"})
//	if err != nil {
//		return err
//	}
//	if !res.Success {
//		return fmt.Errorf("login refused: %s", res.Message)
//	}
//	name, err := c.Name(ctx, res.Message)
package accountsdk
