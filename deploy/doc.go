// Package deploy delivers the menu's HTML entry file to a hosting target:
// a Netlify drop deploy, a GitHub Pages repository, a Vercel deployment or a
// local zip for manual upload.
//
// Every network integration is one best-effort attempt. Failures come back
// as *APIError carrying the status and body; nothing is retried. Optional
// follow-ups after a successful deploy (clipboard, browser, QR generation)
// are injected through Hooks and do nothing when absent.
package deploy
