/*
Package foliosdk is a client for the folio download service.

# Overview

The service hands out short-lived signed links to downloadable resources. A
caller asks for a link, shows it to a user, and the user's browser follows it
to GET /api/download, which redirects to the real file.

	client := foliosdk.NewClient("https://folio.example.com")

	ticket, err := client.RequestDownloadLink(ctx, "1")
	if foliosdk.IsNotFound(err) {
		// no such resource, no link was issued
	}
	fmt.Println(ticket.FileName, ticket.FileSize, ticket.URL)

ResolveDownload redeems a link without following the redirect, which is handy
for tests and for server-side callers that want to stream the file
themselves:

	location, err := client.ResolveDownload(ctx, ticket.URL)
	if foliosdk.IsUnauthorized(err) {
		// missing, tampered, expired or revoked link
	}

# Admin

Catalog maintenance and link revocation need the service's ADMIN_TOKEN, and a
one-time code when the service has ADMIN_TOTP_SECRET set:

	admin := client.NewAdminSession(adminToken, foliosdk.WithTOTPSecret(totpSecret))

	_, err := admin.PutResource(ctx, "2", foliosdk.PutResourceRequest{
		Name:     "Shader Pack",
		FileName: "shaders.zip",
		FileSize: "2.1MB",
		Version:  "1.0.0",
		Checksum: "sha256:...",
		Location: "https://files.example.com/shaders.zip",
	})

	_, err = admin.RevokeLink(ctx, ticket.URL, "shared publicly")

# Errors

Every non-success response is returned as an *APIError carrying the HTTP
status, an error code and a description.
*/
package foliosdk
