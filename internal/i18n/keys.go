package i18n

// Message keys used by the user-facing adapters. Error keys live with the
// services that map errors to them.
const (
	KeyCallbackTitle       = "callback.title"
	KeyCallbackWait        = "callback.wait"
	KeyCallbackSuccess     = "callback.success"
	KeyCallbackSuccessAs   = "callback.success_email"
	KeyCallbackRedirecting = "callback.redirecting"
	KeyCallbackErrorTitle  = "callback.error_title"
	KeyCallbackReturn      = "callback.return"
	KeyCallbackCloseWindow = "callback.close_window"

	KeyPanelTitle         = "panel.title"
	KeyPanelDescription   = "panel.description"
	KeyPanelLoading       = "panel.loading"
	KeyPanelConnected     = "panel.connected"
	KeyPanelConnectedAs   = "panel.connected_as"
	KeyPanelNotConnected  = "panel.not_connected"
	KeyPanelConnect       = "panel.connect"
	KeyPanelConnecting    = "panel.connecting"
	KeyPanelDisconnect    = "panel.disconnect"
	KeyPanelDisconnecting = "panel.disconnecting"
	KeyPanelCancelled     = "panel.disconnect_cancelled"
	KeyPanelOpenURL       = "panel.open_url"
	KeyPanelWaiting       = "panel.waiting"

	KeyWizardTitle         = "wizard.title"
	KeyWizardDescription   = "wizard.description"
	KeyWizardBlocked       = "wizard.blocked"
	KeyWizardBlockedHint   = "wizard.blocked_hint"
	KeyWizardStatusLoading = "wizard.status_loading"
	KeyWizardGenerate      = "wizard.generate"
	KeyWizardGenerating    = "wizard.generating"
	KeyWizardSuccess       = "wizard.success"
	KeyWizardRootFolder    = "wizard.root_folder"
	KeyWizardArchiveFolder = "wizard.archive_folder"
	KeyWizardFinishing     = "wizard.finishing"
	KeyWizardVerifyOK      = "wizard.verify_ok"
	KeyWizardVerifyBad     = "wizard.verify_bad"

	KeyCLIListening    = "cli.listening"
	KeyCLIDisconnected = "cli.disconnected"
	KeyCLITimeout      = "cli.timeout"
	KeyCLITokenSaved   = "cli.token_saved"
	KeyCLITokenCleared = "cli.token_cleared"
	KeyCLITokenNone    = "cli.token_none"
	KeyCLITokenPrompt  = "cli.token_prompt"

	KeyTUIHelpPanel         = "tui.help_panel"
	KeyTUIHelpCallback      = "tui.help_callback"
	KeyTUIHelpWizard        = "tui.help_wizard"
	KeyTUIChannelName       = "tui.channel_name"
	KeyTUIChannelUUID       = "tui.channel_uuid"
	KeyTUIRedirectURL       = "tui.redirect_url"
	KeyTUIConfirmDisconnect = "tui.confirm_disconnect"
)

// uiKeys lists the keys above for catalog completeness checks.
var uiKeys = []string{
	KeyCallbackTitle, KeyCallbackWait, KeyCallbackSuccess, KeyCallbackSuccessAs,
	KeyCallbackRedirecting, KeyCallbackErrorTitle, KeyCallbackReturn, KeyCallbackCloseWindow,
	KeyPanelTitle, KeyPanelDescription, KeyPanelLoading, KeyPanelConnected, KeyPanelConnectedAs,
	KeyPanelNotConnected, KeyPanelConnect, KeyPanelConnecting, KeyPanelDisconnect,
	KeyPanelDisconnecting, KeyPanelCancelled, KeyPanelOpenURL, KeyPanelWaiting,
	KeyWizardTitle, KeyWizardDescription, KeyWizardBlocked, KeyWizardBlockedHint,
	KeyWizardStatusLoading, KeyWizardGenerate, KeyWizardGenerating, KeyWizardSuccess,
	KeyWizardRootFolder, KeyWizardArchiveFolder, KeyWizardFinishing, KeyWizardVerifyOK, KeyWizardVerifyBad,
	KeyCLIListening, KeyCLIDisconnected, KeyCLITimeout, KeyCLITokenSaved, KeyCLITokenCleared,
	KeyCLITokenNone, KeyCLITokenPrompt,
	KeyTUIHelpPanel, KeyTUIHelpCallback, KeyTUIHelpWizard, KeyTUIChannelName, KeyTUIChannelUUID,
	KeyTUIRedirectURL, KeyTUIConfirmDisconnect,
}
