// Package attachment manages files logically attached to a data record.
//
// A Manager owns a naming scheme and a table of formats (stored variants).
// The base file name is derived from the owner entity's naming attributes,
// each variant is stored as <baseName><suffix>.<ext>, and existing variants
// are matched back out of the storage directory by suffix and extension
// without knowing the exact name written earlier.
//
// The owner's lifecycle drives the stored files: after insert or update the
// previous variants are purged and new ones written from the uploaded
// source, optionally through a per-format processor; after delete the
// variants are purged. Lookups and URL construction are independent of the
// lifecycle.
//
// Example:
//
//	m, err := attachment.New(
//	    attachment.Settings{RootDir: "/var/www/webroot", BaseURL: "https://example.com"},
//	    attachment.Config{
//	        Attribute: "avatar",
//	        Dir:       "img/avatars",
//	        Formats: []attachment.Format{
//	            {Name: "thumb", Suffix: "_thumb", Steps: []attachment.Step{
//	                {Op: "resize", Args: []any{60, 60}},
//	            }},
//	        },
//	    },
//	    attachment.WithProcessorFactory(imageproc.New),
//	)
//	if err != nil {
//	    return err
//	}
//
//	// After the user record was inserted or updated:
//	a := m.For(user)
//	if err := a.OnSavedFrom(ctx, upload.NewRequestResolver(r)); err != nil {
//	    return err
//	}
//
//	url, err := a.FileURL("thumb")
//
// Saves and deletes for one owner must not run concurrently; the
// purge-then-write sequence is not atomic and relies on the caller's
// request or transaction boundary for serialization.
package attachment
