//go:generate gomarkdoc -e -f github -o API.md . --repository.url https://github.com/agentstation/hackfinder --repository.default-branch main --repository.path /

package hackfinder
