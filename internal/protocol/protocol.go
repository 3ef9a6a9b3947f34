// SPDX-License-Identifier: EPL-2.0

package protocol

import "pdkserve/pkg/pdk"

// Actions recognized by the dispatcher.
const (
	ActionDiscover         = "discover"
	ActionAddLocalPath     = "add_local_path"
	ActionInstall          = "install"
	ActionGetDeviceDetails = "get_device_details"
	ActionPing             = "ping"
)

// Statuses carried by every response.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

type (
	// Request is one decoded protocol command. Only Action is always
	// present; the remaining fields are per-action inputs.
	Request struct {
		Action  string `json:"action"`
		Path    string `json:"path,omitempty"`
		Package string `json:"package,omitempty"`
		PDK     string `json:"pdk,omitempty"`
		Device  string `json:"device,omitempty"`
	}

	// StatusResponse answers ping, add_local_path, and every error case
	// that carries only a message.
	StatusResponse struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	// DiscoverResponse carries a full discovery result. PDKs is always
	// present, empty when nothing was discovered.
	DiscoverResponse struct {
		Status string        `json:"status"`
		PDKs   []pdk.Package `json:"pdks"`
	}

	// DeviceResponse answers a successful get_device_details lookup.
	DeviceResponse struct {
		Status string     `json:"status"`
		Device pdk.Device `json:"device"`
	}

	// InstallResponse reports an installer run, success or failure, with
	// the captured output and exit code.
	InstallResponse struct {
		Status     string `json:"status"`
		Output     string `json:"output"`
		ReturnCode int    `json:"returncode"`
	}
)

func okMessage(msg string) StatusResponse {
	return StatusResponse{Status: StatusOK, Message: msg}
}

func errorMessage(msg string) StatusResponse {
	return StatusResponse{Status: StatusError, Message: msg}
}
