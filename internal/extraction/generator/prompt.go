package generator

// SystemPrompt is the instruction sent with every extraction request.
const SystemPrompt = `Parse unstructured meeting text into structured data.

Extract:
- decisions: agreements or conclusions. Include confidence (0.0-1.0).
- tasks: actionable items with:
  - title and description
  - priority: P0, P1, P2, P3
  - domain: frontend, backend, infra, data, product, design, qa, unknown
  - complexity: 1, 2, 3, 5, 8, 13 (Fibonacci points)
  - owner_hint: role or team (not a person's name), or null
  - confidence: 0.0-1.0
  - reasoning: brief explanation (1-2 sentences max), or null
- noise: greetings, filler, repetition, vague complaints. Each with text and reason.

Rules:
- Use exact enum values only
- Use "unknown" domain if unclear
- Do not invent IDs, stakeholders, dependencies, or deadlines
- Keep reasoning concise
- Respond with a single JSON object with the keys decisions, tasks and noise`
