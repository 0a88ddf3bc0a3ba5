package compute

// BootstrapScript is sent as user data with every instance. It installs the
// python interpreter ansible needs on both Debian and RHEL family images.
const BootstrapScript = `#!/bin/bash
if [[ -e /etc/debian_version ]]; then
    apt-get update -y
    apt-get -y install python3
else
    yum -y install python3
fi
`
