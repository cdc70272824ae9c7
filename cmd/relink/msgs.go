package main

const (
	// Command descriptions
	MsgRootShort       = "Relink Revit links to their newest revision"
	MsgRunShort        = "Relink every link of the host document once"
	MsgWatchShort      = "Relink now and again whenever a new revision appears"
	MsgHistoryShort    = "List recent relink runs"
	MsgVersionShort    = "Print version information"
	MsgGenConfigShort  = "Print the default configuration"
	MsgCompletionShort = "Generate shell completion script"

	MsgRootLong = `relink walks every link of a host document, looks in each link's
"Revit Links" folder for a file of the same family with a higher -RVT-
revision, and rebinds the link to the newest one. Worksets that were closed
in the linked model stay closed after the swap.

Running relink with no command performs a single run. Every run writes a
log next to the host document and opens it in a viewer.`

	MsgHistoryLong = `history lists the most recent runs. Given a run id it shows every
link of that run with its revisions and outcome.`

	MsgWatchLong = `watch performs a run, then keeps watching every Links Folder seen in
that run. When link files are created or renamed it waits for the folder
to settle and runs again. Stop it with Ctrl-C.`

	MsgCompletionLong = `To load completions:

Bash:
  $ source <(relink completion bash)

Zsh:
  $ relink completion zsh > "${fpath[1]}/_relink"

Fish:
  $ relink completion fish | source

PowerShell:
  PS> relink completion powershell | Out-String | Invoke-Expression`

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Report what would be relinked without changing anything"
	MsgFlagConfig   = "Config file (default ./.relink.toml)"
	MsgFlagManifest = "Host document manifest (.yaml, .toml or .xml)"
	MsgFlagNoViewer = "Do not open the run log when done"
	MsgFlagLimit    = "Number of runs to show"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
)
