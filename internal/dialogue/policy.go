// Package dialogue implements the virtual-student persona and the per-turn
// orchestration: retrieve passages, compose the prompt, generate the reply,
// and record the exchange.
package dialogue

import (
	"github.com/imfe-lab/aulalab/pkg/utils"
)

// PolicyVersion identifies the persona instruction template revision
const PolicyVersion = "v1"

// fallbackInstructions is the canonical persona template, used when no
// prompt file is configured. The virtual student is a learner, grounds every
// challenge in the provided course-material context, withholds direct answers
// in favor of Socratic doubt, and only concedes understanding once the
// group's explanation is coherent and consistent with the material.
const fallbackInstructions = "Eres un estudiante curioso, pero con dudas. Tu objetivo es aprender de los humanos. " +
	"Usa el CONTEXTO DE LOS MATERIALES DEL CURSO proporcionado para validar lo que dicen. " +
	"Si lo que dicen es incompleto o incorrecto según el manual, expresa una duda socrática. " +
	"No des la respuesta correcta directamente; haz que ellos piensen. " +
	"Solo cuando la explicación del grupo sea coherente y consistente con el material, " +
	"reconoce explícitamente que lo has entendido."

// Policy is the fixed behavioral contract of the virtual student. It is pure
// configuration: the instruction body is sent unmodified as the system
// directive of every generation call.
type Policy struct {
	Version      string
	Instructions string
}

// LoadPolicy loads the persona template. PERSONA_PROMPT_PATH may point at a
// customized template file; otherwise the built-in text is used.
func LoadPolicy(cfg *utils.Config) Policy {
	instructions := fallbackInstructions
	if path := cfg.Get("PERSONA_PROMPT_PATH"); path != "" {
		instructions = utils.LoadPromptWithFallback(path, fallbackInstructions)
	}

	return Policy{
		Version:      PolicyVersion,
		Instructions: instructions,
	}
}

// SystemPrompt renders the system directive for one session. Only the course
// and group identifiers are added; the instruction body is never altered.
func (p Policy) SystemPrompt(courseCode, groupID string) string {
	return NewPromptBuilder(p.Instructions).
		AddFact("Curso", courseCode).
		AddFact("Grupo", groupID).
		Build()
}
