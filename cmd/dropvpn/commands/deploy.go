package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/dropvpn/cmd/dropvpn/handlers"
)

// Deploy returns the command that creates and configures a VPN server.
//
// Every flag overrides the matching field of the configuration file.
//
// Flags:
//
//	--config, -c: Path to configuration file (default: dropvpn.yaml if present)
//	--provider: digitalocean or hetzner
//	--ip: Address allowed to use the VPN (default: detected public IP)
//	--email: Contact address passed to the playbook
//	--name: Instance name (default: VPN-<unix time>)
//	--region, --image, --size: Instance placement and type
//	--playbook: Ansible playbook to run
//	--key-dir: Directory holding the deployment SSH key
//	--skip-verify: Do not wait for client.ovpn to be served
//	--metrics-file: Write run metrics in Prometheus text format
func Deploy() *cobra.Command {
	var opts handlers.DeployOptions

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create a cloud instance and install OpenVPN on it",
		Long: `Create a cloud instance and install OpenVPN on it.

The deploy runs in three phases:
  1. access   generate the deployment SSH key and register it
  2. compute  create the instance, wait for its IPv4 address and SSH
  3. deploy   run the ansible playbook and check the client profile

API tokens are read from DIGITALOCEAN_TOKEN (or DO_TOKEN) and HCLOUD_TOKEN.

Examples:
  # Deploy with defaults, allowing only your current public IP
  dropvpn deploy

  # Deploy to Hetzner in Helsinki
  dropvpn deploy --provider hetzner --region hel1

  # Allow a specific address and name the instance
  dropvpn deploy --ip 198.51.100.7 --name office-vpn`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: dropvpn.yaml)")
	f.StringVar(&opts.Provider, "provider", "", "Cloud provider: digitalocean or hetzner (default: digitalocean)")
	f.StringVar(&opts.ClientIP, "ip", "", "IPv4 address allowed to connect (default: your public IP)")
	f.StringVar(&opts.Email, "email", "", "Contact email passed to the playbook")
	f.StringVar(&opts.Name, "name", "", "Instance name (default: VPN-<unix time>)")
	f.StringVar(&opts.Region, "region", "", "Region slug (default: nyc1 or nbg1)")
	f.StringVar(&opts.Image, "image", "", "Image slug")
	f.StringVar(&opts.Size, "size", "", "Instance size or server type")
	f.StringVar(&opts.Playbook, "playbook", "", "Ansible playbook (default: playbook/openvpn.yml)")
	f.StringVar(&opts.KeyDir, "key-dir", "", "SSH key directory (default: playbook/env)")
	f.BoolVar(&opts.SkipVerify, "skip-verify", false, "Do not wait for the client profile to be served")
	f.StringVar(&opts.MetricsFile, "metrics-file", "", "Write run metrics to this file in Prometheus text format")

	return cmd
}
