package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/imamik/dropvpn/internal/config"
	"github.com/imamik/dropvpn/internal/platform/ansible"
	"github.com/imamik/dropvpn/internal/platform/cloud"
	"github.com/imamik/dropvpn/internal/provisioning"
	"github.com/imamik/dropvpn/internal/provisioning/access"
	"github.com/imamik/dropvpn/internal/provisioning/compute"
	"github.com/imamik/dropvpn/internal/provisioning/deploy"
	testutil "github.com/imamik/dropvpn/internal/testing"
	"github.com/imamik/dropvpn/internal/util/prerequisites"
)

const testAddress = "203.0.113.10"

// fakePhases wires the real phases to a mocked prober and playbook runner.
func fakePhases(t *testing.T, runErr error) (*testutil.MockPlaybookRunner, *testutil.MockProber) {
	t.Helper()
	prober := &testutil.MockProber{}
	prober.On("Handshake", mock.Anything, testAddress, mock.Anything).Return(nil)
	runner := &testutil.MockPlaybookRunner{}
	runner.On("RunPlaybook", mock.Anything, mock.Anything).Return(runErr)

	newPhases = func() []provisioning.Phase {
		return []provisioning.Phase{
			access.NewProvisioner(),
			compute.NewProvisioner(compute.WithProber(prober), compute.WithTimer(testutil.NewFakeTimer())),
			deploy.NewProvisioner(deploy.WithRunner(runner)),
		}
	}
	return runner, prober
}

func deployOptions(t *testing.T) DeployOptions {
	t.Helper()
	keyDir := t.TempDir()
	testutil.WriteKeyPair(t, access.PrivateKeyPath(keyDir))
	return DeployOptions{
		Name:       "office",
		KeyDir:     keyDir,
		SkipVerify: true,
	}
}

func TestDeploy_Success(t *testing.T) {
	out := saveAndRestoreFactories(t)
	fixture := testutil.NewProviderFixture().AddressAfter("office", testAddress, 2)
	useProvider(fixture.Mock())
	runner, prober := fakePhases(t, nil)
	opts := deployOptions(t)
	opts.MetricsFile = filepath.Join(t.TempDir(), "dropvpn.prom")

	err := Deploy(context.Background(), opts)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Deploying VPN server")
	assert.Contains(t, out.String(), "Client IP: 198.51.100.7")
	assert.Contains(t, out.String(), "http://203.0.113.10/client.ovpn")
	prober.AssertExpectations(t)

	require.Len(t, runner.Calls, 1)
	target := runner.Calls[0].Arguments.Get(1).(ansible.Target)
	assert.Equal(t, testAddress, target.Address)
	assert.Equal(t, "198.51.100.7", target.ClientIP)
	assert.Equal(t, access.PrivateKeyPath(opts.KeyDir), target.PrivateKeyPath)

	requests := fixture.Mock().Requests
	require.Len(t, requests, 1)
	assert.Equal(t, "office", requests[0].Name)
	assert.Equal(t, "nyc1", requests[0].Region)
	assert.Len(t, requests[0].SSHKeyIDs, 1)

	metrics, err := os.ReadFile(opts.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `dropvpn_run_success{provider="mock"} 1`)
}

func TestDeploy_DefaultNameGetsTimestamp(t *testing.T) {
	out := saveAndRestoreFactories(t)
	now = func() time.Time { return time.Unix(1700000000, 0) }
	useProvider(testutil.NewProviderFixture().AddressAfter("VPN-1700000000", testAddress, 1).Mock())
	fakePhases(t, nil)
	opts := deployOptions(t)
	opts.Name = ""

	require.NoError(t, Deploy(context.Background(), opts))
	assert.Contains(t, out.String(), "Name:      VPN-1700000000")
}

func TestDeploy_ExplicitClientIPSkipsDetection(t *testing.T) {
	saveAndRestoreFactories(t)
	detectPublicIP = func(context.Context) (string, error) {
		t.Fatal("public IP detection must not run")
		return "", nil
	}
	useProvider(testutil.NewProviderFixture().AddressAfter("office", testAddress, 1).Mock())
	runner, _ := fakePhases(t, nil)
	opts := deployOptions(t)
	opts.ClientIP = "192.0.2.44"

	require.NoError(t, Deploy(context.Background(), opts))
	target := runner.Calls[0].Arguments.Get(1).(ansible.Target)
	assert.Equal(t, "192.0.2.44", target.ClientIP)
}

func TestDeploy_MissingToken(t *testing.T) {
	saveAndRestoreFactories(t)
	lookupToken = func(config.Provider) (string, error) { return "", errors.New("DIGITALOCEAN_TOKEN is not set") }
	newProvider = func(config.Provider, string) (cloud.Provider, error) {
		t.Fatal("provider must not be created without a token")
		return nil, nil
	}

	err := Deploy(context.Background(), DeployOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrAuth)
	assert.Equal(t, provisioning.ExitAuth, provisioning.ExitCode(err))
}

func TestDeploy_MissingAnsible(t *testing.T) {
	saveAndRestoreFactories(t)
	checkDefaultPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{Missing: prerequisites.DefaultTools()}
	}

	err := Deploy(context.Background(), DeployOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ansible-playbook")
}

func TestDeploy_IPDetectionFails(t *testing.T) {
	saveAndRestoreFactories(t)
	useProvider(&cloud.MockProvider{})
	detectPublicIP = func(context.Context) (string, error) { return "", errors.New("all endpoints failed") }

	err := Deploy(context.Background(), DeployOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all endpoints failed")
}

func TestDeploy_AddressNeverAppears(t *testing.T) {
	out := saveAndRestoreFactories(t)
	useProvider(testutil.NewProviderFixture().AddressAfter("office", testAddress, 1000).Mock())
	runner, _ := fakePhases(t, nil)
	opts := deployOptions(t)
	opts.MetricsFile = filepath.Join(t.TempDir(), "dropvpn.prom")

	err := Deploy(context.Background(), opts)

	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrAddressNotFound)
	assert.Equal(t, provisioning.ExitProvisioning, provisioning.ExitCode(err))
	assert.Contains(t, out.String(), "Deploy failed at stage address-pending")
	assert.Contains(t, out.String(), "Instance office (ID 1002) was created")
	assert.Empty(t, runner.Calls)

	metrics, readErr := os.ReadFile(opts.MetricsFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(metrics), `dropvpn_run_success{provider="mock"} 0`)
}

func TestDeploy_PlaybookFails(t *testing.T) {
	saveAndRestoreFactories(t)
	useProvider(testutil.NewProviderFixture().AddressAfter("office", testAddress, 1).Mock())
	fakePhases(t, errors.New("exit status 2"))

	err := Deploy(context.Background(), deployOptions(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrDeploymentFailed)
	assert.Equal(t, provisioning.ExitDeployment, provisioning.ExitCode(err))
}

func TestDeploy_QuotaExceeded(t *testing.T) {
	out := saveAndRestoreFactories(t)
	provider := &cloud.MockProvider{
		CreateInstanceFunc: func(context.Context, cloud.CreateRequest) (*cloud.Instance, error) {
			return nil, cloud.Wrap("create droplet", cloud.ErrQuotaExceeded, errors.New("droplet limit reached"))
		},
	}
	useProvider(provider)
	fakePhases(t, nil)

	err := Deploy(context.Background(), deployOptions(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, provisioning.ErrQuotaExceeded)
	assert.Contains(t, out.String(), "Deploy failed at stage creating")
	assert.Contains(t, out.String(), "droplet limit reached")
	assert.NotContains(t, out.String(), "was created")
}
