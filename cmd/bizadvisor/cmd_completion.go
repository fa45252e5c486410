package main

import (
	"flag"
	"fmt"
	"os"
)

func completionCmd() {
	fs := flag.NewFlagSet("completion", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bizadvisor completion <bash|zsh|fish>\n\n")
		fmt.Fprintf(os.Stderr, "Generate shell completion scripts.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  # Bash\n")
		fmt.Fprintf(os.Stderr, "  bizadvisor completion bash > /usr/local/etc/bash_completion.d/bizadvisor\n")
		fmt.Fprintf(os.Stderr, "  # Zsh\n")
		fmt.Fprintf(os.Stderr, "  bizadvisor completion zsh > \"${fpath[1]}/_bizadvisor\"\n")
		fmt.Fprintf(os.Stderr, "  # Fish\n")
		fmt.Fprintf(os.Stderr, "  bizadvisor completion fish > ~/.config/fish/completions/bizadvisor.fish\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: shell name is required (bash, zsh, or fish)\n\n")
		fs.Usage()
		os.Exit(1)
	}

	shell := fs.Arg(0)
	switch shell {
	case "bash":
		fmt.Print(generateBashCompletion())
	case "zsh":
		fmt.Print(generateZshCompletion())
	case "fish":
		fmt.Print(generateFishCompletion())
	default:
		fmt.Fprintf(os.Stderr, "Error: unsupported shell %q (use bash, zsh, or fish)\n", shell)
		os.Exit(1)
	}
}

func generateBashCompletion() string {
	return `# bash completion for bizadvisor                         -*- shell-script -*-

_bizadvisor() {
    local cur prev words cword
    _init_completion || return

    local commands="submit history validate completion version help"

    local tui_flags="--config --version"
    local submit_flags="--config --timeout --no-history"
    local history_flags="--limit --output --search --config"

    local output_formats="text json"
    local shells="bash zsh fish"

    if [[ ${cword} -eq 1 ]]; then
        if [[ "${cur}" == -* ]]; then
            COMPREPLY=($(compgen -W "${tui_flags}" -- "${cur}"))
        else
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
        fi
        return
    fi

    local command="${words[1]}"

    case "${prev}" in
        --output)
            COMPREPLY=($(compgen -W "${output_formats}" -- "${cur}"))
            return
            ;;
        --config)
            COMPREPLY=($(compgen -f -X '!*.yaml' -- "${cur}"))
            _filedir -d
            return
            ;;
        --limit|--search|--timeout)
            return
            ;;
    esac

    case "${command}" in
        submit)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${submit_flags}" -- "${cur}"))
            else
                COMPREPLY=($(compgen -f -X '!*.@(json|yaml|yml)' -- "${cur}"))
                _filedir -d
            fi
            ;;
        history)
            if [[ "${cur}" == -* ]]; then
                COMPREPLY=($(compgen -W "${history_flags}" -- "${cur}"))
            fi
            ;;
        validate)
            COMPREPLY=($(compgen -f -X '!*.@(json|yaml|yml)' -- "${cur}"))
            _filedir -d
            ;;
        completion)
            COMPREPLY=($(compgen -W "${shells}" -- "${cur}"))
            ;;
    esac
}

complete -F _bizadvisor bizadvisor
`
}

func generateZshCompletion() string {
	return `#compdef bizadvisor

# zsh completion for bizadvisor

_bizadvisor() {
    local -a commands
    commands=(
        'submit:Submit a profile file without the TUI'
        'history:List past submissions'
        'validate:Validate business profile files (JSON or YAML)'
        'completion:Generate shell completion scripts'
        'version:Print version information'
        'help:Show help message'
    )

    _arguments -C \
        '--config[Path to a config.yaml file]:config file:_files -g "*.yaml"' \
        '--version[Print version and exit]' \
        '1:command:->command' \
        '*::arg:->args'

    case $state in
        command)
            _describe -t commands 'bizadvisor commands' commands
            ;;
        args)
            case $words[1] in
                submit)
                    _arguments \
                        '--config[Path to a config.yaml file]:config file:_files -g "*.yaml"' \
                        '--timeout[Submission timeout]:timeout:' \
                        '--no-history[Do not record the submission in history]' \
                        '*:profile file:_files -g "*.(json|yaml|yml)"'
                    ;;
                history)
                    _arguments \
                        '--limit[Maximum number of submissions to list]:limit:' \
                        '--output[Output format]:format:(text json)' \
                        '--search[Filter by business type or tasks]:query:' \
                        '--config[Path to a config.yaml file]:config file:_files -g "*.yaml"'
                    ;;
                validate)
                    _arguments \
                        '*:profile file:_files -g "*.(json|yaml|yml)"'
                    ;;
                completion)
                    _arguments \
                        '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

_bizadvisor "$@"
`
}

func generateFishCompletion() string {
	return `# fish completion for bizadvisor

# Disable file completions by default
complete -c bizadvisor -f

# Subcommands
complete -c bizadvisor -n '__fish_use_subcommand' -a submit -d 'Submit a profile file without the TUI'
complete -c bizadvisor -n '__fish_use_subcommand' -a history -d 'List past submissions'
complete -c bizadvisor -n '__fish_use_subcommand' -a validate -d 'Validate business profile files (JSON or YAML)'
complete -c bizadvisor -n '__fish_use_subcommand' -a completion -d 'Generate shell completion scripts'
complete -c bizadvisor -n '__fish_use_subcommand' -a version -d 'Print version information'
complete -c bizadvisor -n '__fish_use_subcommand' -a help -d 'Show help message'

# TUI flags
complete -c bizadvisor -n '__fish_use_subcommand' -l config -d 'Path to a config.yaml file' -rF
complete -c bizadvisor -n '__fish_use_subcommand' -l version -d 'Print version and exit'

# submit flags
complete -c bizadvisor -n '__fish_seen_subcommand_from submit' -l config -d 'Path to a config.yaml file' -rF
complete -c bizadvisor -n '__fish_seen_subcommand_from submit' -l timeout -d 'Submission timeout' -r
complete -c bizadvisor -n '__fish_seen_subcommand_from submit' -l no-history -d 'Do not record the submission in history'
complete -c bizadvisor -n '__fish_seen_subcommand_from submit' -F

# history flags
complete -c bizadvisor -n '__fish_seen_subcommand_from history' -l limit -d 'Maximum number of submissions to list' -r
complete -c bizadvisor -n '__fish_seen_subcommand_from history' -l output -d 'Output format' -ra 'text json'
complete -c bizadvisor -n '__fish_seen_subcommand_from history' -l search -d 'Filter by business type or tasks' -r
complete -c bizadvisor -n '__fish_seen_subcommand_from history' -l config -d 'Path to a config.yaml file' -rF

# validate - file completion
complete -c bizadvisor -n '__fish_seen_subcommand_from validate' -F

# completion - shell names
complete -c bizadvisor -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish' -d 'Shell type'
`
}
