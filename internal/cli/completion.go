package cli

import (
	"fmt"
	"io"
	"strings"
)

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - units: The unit names offered after -unit.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, units []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, units)
	case "zsh":
		return generateZshCompletion(out, units)
	case "fish":
		return generateFishCompletion(out, units)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, units)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, units []string) error {
	script := `# Bash completion script for convkit
# Add this to your ~/.bashrc or ~/.bash_completion

_convkit_completions() {
    local cur prev opts units
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="--help -h --version -V --mode --value --base --unit --paste --advanced --json --quiet -q --no-color --server --port --interactive --batch --concurrency --timeout --cache-size --max-input --log-level --config --completion"

    units="%s"

    case "${prev}" in
        --mode)
            COMPREPLY=( $(compgen -W "base bytes" -- "${cur}") )
            return 0
            ;;
        --unit)
            COMPREPLY=( $(compgen -W "${units}" -- "${cur}") )
            return 0
            ;;
        --base)
            COMPREPLY=( $(compgen -W "2 8 10 16 32 36 bin oct dec hex" -- "${cur}") )
            return 0
            ;;
        --completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            return 0
            ;;
        --log-level)
            COMPREPLY=( $(compgen -W "debug info warn error off" -- "${cur}") )
            return 0
            ;;
        --batch|--config)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
        --port)
            COMPREPLY=( $(compgen -W "8080 3000 5000 9000" -- "${cur}") )
            return 0
            ;;
        --timeout)
            COMPREPLY=( $(compgen -W "5s 30s 1m 5m" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _convkit_completions convkit
`
	_, err := fmt.Fprintf(out, script, strings.Join(units, " "))
	return err
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, units []string) error {
	script := `#compdef convkit

# Zsh completion script for convkit
# Add this to your ~/.zshrc or place in $fpath

_convkit() {
    local -a units
    units=(%s)

    _arguments -s \
        '(-h --help)'{-h,--help}'[Show help message]' \
        '(-V --version)'{-V,--version}'[Show version information]' \
        '--mode[Converter to use]:mode:(base bytes)' \
        '--value[Text of the edited field]:value:' \
        '--base[Base of the edited field]:base:(2 8 10 16 32 36 bin oct dec hex)' \
        '--unit[Unit of the edited field]:unit:($units)' \
        '--paste[Read the initial value from the clipboard]' \
        '--advanced[Show every base from 2 to 36]' \
        '--json[Output in JSON format]' \
        '(-q --quiet)'{-q,--quiet}'[Quiet mode for scripts]' \
        '--no-color[Disable colored output]' \
        '--server[Start HTTP server mode]' \
        '--port[Server port]:port:(8080 3000 5000 9000)' \
        '--interactive[Start interactive REPL mode]' \
        '--batch[Convert every line of a file]:file:_files' \
        '--config[TOML file of flag defaults]:file:_files' \
        '--concurrency[Maximum concurrent conversions]:count:' \
        '--timeout[Maximum execution time]:duration:(5s 30s 1m 5m)' \
        '--cache-size[Cached conversion responses]:count:' \
        '--max-input[Longest accepted input in bytes]:bytes:' \
        '--log-level[Log level]:level:(debug info warn error off)' \
        '--completion[Generate completion script]:shell:(bash zsh fish powershell)'
}

_convkit "$@"
`
	_, err := fmt.Fprintf(out, script, strings.Join(units, " "))
	return err
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, units []string) error {
	script := `# Fish completion script for convkit
# Add this to ~/.config/fish/completions/convkit.fish

# Disable file completion by default
complete -c convkit -f

# Help and version
complete -c convkit -s h -l help -d 'Show help message'
complete -c convkit -s V -l version -d 'Show version information'

# Conversion
complete -c convkit -l mode -d 'Converter to use' -xa 'base bytes'
complete -c convkit -l value -d 'Text of the edited field' -x
complete -c convkit -l base -d 'Base of the edited field' -xa '2 8 10 16 32 36 bin oct dec hex'
complete -c convkit -l unit -d 'Unit of the edited field' -xa '%s'
complete -c convkit -l paste -d 'Read the initial value from the clipboard'
complete -c convkit -l advanced -d 'Show every base from 2 to 36'

# Output options
complete -c convkit -l json -d 'Output in JSON format'
complete -c convkit -s q -l quiet -d 'Quiet mode for scripts'
complete -c convkit -l no-color -d 'Disable colored output'

# Server mode
complete -c convkit -l server -d 'Start HTTP server mode'
complete -c convkit -l port -d 'Server port' -xa '8080 3000 5000 9000'
complete -c convkit -l cache-size -d 'Cached conversion responses' -x
complete -c convkit -l max-input -d 'Longest accepted input in bytes' -x

# Batch mode
complete -c convkit -l batch -d 'Convert every line of a file' -rF
complete -c convkit -l config -d 'TOML file of flag defaults' -rF
complete -c convkit -l concurrency -d 'Maximum concurrent conversions' -x
complete -c convkit -l timeout -d 'Maximum execution time' -xa '5s 30s 1m 5m'

# Interactive, logging and completion
complete -c convkit -l interactive -d 'Start interactive REPL mode'
complete -c convkit -l log-level -d 'Log level' -xa 'debug info warn error off'
complete -c convkit -l completion -d 'Generate completion script' -xa 'bash zsh fish powershell'
`
	_, err := fmt.Fprintf(out, script, strings.Join(units, " "))
	return err
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, units []string) error {
	script := `# PowerShell completion script for convkit
# Add this to your $PROFILE

$convkitUnits = @(%s)

Register-ArgumentCompleter -CommandName 'convkit' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
        @{Name = '-h'; Description = 'Show help message' }
        @{Name = '--help'; Description = 'Show help message' }
        @{Name = '-V'; Description = 'Show version information' }
        @{Name = '--version'; Description = 'Show version information' }
        @{Name = '--mode'; Description = 'Converter to use' }
        @{Name = '--value'; Description = 'Text of the edited field' }
        @{Name = '--base'; Description = 'Base of the edited field' }
        @{Name = '--unit'; Description = 'Unit of the edited field' }
        @{Name = '--paste'; Description = 'Read the initial value from the clipboard' }
        @{Name = '--advanced'; Description = 'Show every base from 2 to 36' }
        @{Name = '--json'; Description = 'Output in JSON format' }
        @{Name = '-q'; Description = 'Quiet mode for scripts' }
        @{Name = '--quiet'; Description = 'Quiet mode for scripts' }
        @{Name = '--no-color'; Description = 'Disable colored output' }
        @{Name = '--server'; Description = 'Start HTTP server mode' }
        @{Name = '--port'; Description = 'Server port' }
        @{Name = '--interactive'; Description = 'Start interactive REPL mode' }
        @{Name = '--batch'; Description = 'Convert every line of a file' }
        @{Name = '--config'; Description = 'TOML file of flag defaults' }
        @{Name = '--concurrency'; Description = 'Maximum concurrent conversions' }
        @{Name = '--timeout'; Description = 'Maximum execution time' }
        @{Name = '--cache-size'; Description = 'Cached conversion responses' }
        @{Name = '--max-input'; Description = 'Longest accepted input in bytes' }
        @{Name = '--log-level'; Description = 'Log level' }
        @{Name = '--completion'; Description = 'Generate completion script' }
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    $values = switch ($prevElement) {
        '--mode' { @('base', 'bytes') }
        '--unit' { $convkitUnits }
        '--base' { @('2', '8', '10', '16', '32', '36', 'bin', 'oct', 'dec', 'hex') }
        '--completion' { @('bash', 'zsh', 'fish', 'powershell') }
        '--log-level' { @('debug', 'info', 'warn', 'error', 'off') }
        '--port' { @('8080', '3000', '5000', '9000') }
        default { $null }
    }
    if ($values) {
        $values | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`
	quoted := make([]string, len(units))
	for i, u := range units {
		quoted[i] = "'" + u + "'"
	}
	_, err := fmt.Fprintf(out, script, strings.Join(quoted, ", "))
	return err
}
