package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"

	"github.com/matsen/chronos/internal/graph"
	"github.com/matsen/chronos/internal/view"
)

// compiledTemplate is parsed at init time to fail fast on template errors.
var compiledTemplate *template.Template

func init() {
	compiledTemplate = template.Must(template.New("graph").Parse(htmlTemplate))
}

// GenerateHTML generates a self-contained interactive HTML page for the
// graph: drag to pan, buttons to zoom and reset, click a node to inspect
// its record. The embedded controls follow the same rules as the view
// package (zoom steps of 1.2 clamped to [0.3, 3.0], unbounded pan).
func GenerateHTML(g *graph.Graph) (string, error) {
	if g == nil {
		return "", fmt.Errorf("graph cannot be nil")
	}
	if g.IsEmpty() {
		return emptyHTML, nil
	}

	graphJSON, err := json.Marshal(g)
	if err != nil {
		return "", err
	}

	data := templateData{
		GraphJSON: template.JS(graphJSON),
		MinScale:  jsNumber(view.MinScale),
		MaxScale:  jsNumber(view.MaxScale),
		ZoomStep:  jsNumber(view.ZoomFactor),
	}

	var buf bytes.Buffer
	if err := compiledTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// templateData holds data for the HTML template.
type templateData struct {
	GraphJSON template.JS
	MinScale  template.JS
	MaxScale  template.JS
	ZoomStep  template.JS
}

// jsNumber formats a float as a JS numeric literal. Interpolating a float64
// directly lets the script escaper pad the value with spaces.
func jsNumber(v float64) template.JS {
	return template.JS(strconv.FormatFloat(v, 'g', -1, 64))
}

const emptyHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Relationship Graph - Empty</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      display: flex;
      justify-content: center;
      align-items: center;
      height: 100vh;
      margin: 0;
      background: #f5f5f5;
    }
    .empty-state {
      text-align: center;
      color: #666;
    }
    .empty-state code {
      background: #e0e0e0;
      padding: 2px 6px;
      border-radius: 3px;
    }
  </style>
</head>
<body>
  <div class="empty-state">
    <h2>No graph data</h2>
    <p>Ingest records first:</p>
    <p><code>chronos ingest observation --text ... --source ...</code></p>
    <p><code>chronos ingest study &lt;pmid&gt;</code></p>
  </div>
</body>
</html>`

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Relationship Graph</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0;
      background: #f5f5f5;
    }
    #canvas { display: block; width: 100vw; height: 100vh; background: white; cursor: grab; }
    #controls {
      position: absolute; top: 12px; left: 12px;
      display: flex; gap: 6px;
    }
    #controls button {
      padding: 4px 10px; font-size: 14px;
      border: 1px solid #ccc; border-radius: 4px; background: white; cursor: pointer;
    }
    #panel {
      position: absolute; top: 12px; right: 12px; display: none;
      background: white; border: 1px solid #ccc; border-radius: 4px;
      padding: 8px 12px; max-width: 320px; font-size: 13px;
      box-shadow: 0 2px 8px rgba(0,0,0,0.15);
    }
    #panel .kind { font-size: 10px; text-transform: uppercase; color: #888; }
    #panel .label { font-weight: bold; margin: 4px 0; }
  </style>
</head>
<body>
  <canvas id="canvas"></canvas>
  <div id="controls">
    <button id="zoom-in">+</button>
    <button id="zoom-out">&minus;</button>
    <button id="reset">Reset</button>
  </div>
  <div id="panel"></div>
  <script>
    (function() {
      const g = {{.GraphJSON}};
      const MIN_SCALE = {{.MinScale}};
      const MAX_SCALE = {{.MaxScale}};
      const ZOOM_STEP = {{.ZoomStep}};

      const fills = {
        'source-early': '#4A90D9',
        'source-late': '#27AE60',
        'concept': '#E8923A',
        'connection': '#9B59B6'
      };

      let scale = 1, offsetX = 0, offsetY = 0;
      let dragging = false, dragStartX = 0, dragStartY = 0, offsetStartX = 0, offsetStartY = 0;
      let selected = '';

      const canvas = document.getElementById('canvas');
      const ctx = canvas.getContext('2d');
      const panel = document.getElementById('panel');

      function radius(kind) { return kind === 'concept' ? 18 : 30; }

      function nodeById(id) { return (g.nodes || []).find(n => n.id === id); }

      function wrapLabel(text, maxWidth) {
        const words = text.split(/\s+/).filter(w => w);
        if (!words.length) return [];
        const lines = [];
        let line = words[0];
        for (const word of words.slice(1)) {
          const candidate = line + ' ' + word;
          if (ctx.measureText(candidate).width > maxWidth) {
            lines.push(line);
            line = word;
          } else {
            line = candidate;
          }
        }
        lines.push(line);
        return lines;
      }

      function draw() {
        canvas.width = window.innerWidth;
        canvas.height = window.innerHeight;
        ctx.clearRect(0, 0, canvas.width, canvas.height);
        ctx.save();
        ctx.translate(offsetX, offsetY);
        ctx.scale(scale, scale);
        ctx.font = '11px sans-serif';
        ctx.textAlign = 'center';

        for (const e of (g.edges || [])) {
          const from = nodeById(e.from), to = nodeById(e.to);
          if (!from || !to) continue;
          ctx.beginPath();
          ctx.strokeStyle = '#95A5A6';
          ctx.lineWidth = Math.max(1 / scale, e.strength * 3);
          ctx.setLineDash(e.kind === 'connection' ? [6, 4] : []);
          ctx.moveTo(from.pos.x, from.pos.y);
          ctx.lineTo(to.pos.x, to.pos.y);
          ctx.stroke();
          ctx.setLineDash([]);

          if (e.label) {
            const mx = (from.pos.x + to.pos.x) / 2, my = (from.pos.y + to.pos.y) / 2;
            const w = ctx.measureText(e.label).width;
            ctx.fillStyle = '#FFFFFF';
            ctx.fillRect(mx - w / 2 - 3, my - 9, w + 6, 15);
            ctx.fillStyle = '#333333';
            ctx.fillText(e.label, mx, my + 3);
          }
        }

        for (const n of (g.nodes || [])) {
          const r = radius(n.kind);
          ctx.beginPath();
          ctx.fillStyle = fills[n.kind] || '#999';
          ctx.arc(n.pos.x, n.pos.y, r, 0, 2 * Math.PI);
          ctx.fill();
          ctx.strokeStyle = '#333333';
          ctx.lineWidth = n.id === selected ? 4 : 1.5;
          ctx.stroke();

          ctx.fillStyle = '#333333';
          let y = n.pos.y + r + 14;
          for (const line of wrapLabel(n.label, 2 * r)) {
            ctx.fillText(line, n.pos.x, y);
            y += 13;
          }
        }

        ctx.restore();
      }

      function clamp(s) { return Math.min(MAX_SCALE, Math.max(MIN_SCALE, s)); }

      document.getElementById('zoom-in').addEventListener('click', function() {
        scale = clamp(scale * ZOOM_STEP);
        draw();
      });
      document.getElementById('zoom-out').addEventListener('click', function() {
        scale = clamp(scale / ZOOM_STEP);
        draw();
      });
      document.getElementById('reset').addEventListener('click', function() {
        scale = 1; offsetX = 0; offsetY = 0; selected = '';
        panel.style.display = 'none';
        draw();
      });

      canvas.addEventListener('mousedown', function(ev) {
        dragging = true;
        dragStartX = ev.clientX; dragStartY = ev.clientY;
        offsetStartX = offsetX; offsetStartY = offsetY;
      });
      canvas.addEventListener('mousemove', function(ev) {
        if (!dragging) return;
        offsetX = offsetStartX + (ev.clientX - dragStartX);
        offsetY = offsetStartY + (ev.clientY - dragStartY);
        draw();
      });
      canvas.addEventListener('mouseup', function() { dragging = false; });
      canvas.addEventListener('mouseleave', function() { dragging = false; });

      canvas.addEventListener('click', function(ev) {
        const gx = (ev.clientX - offsetX) / scale;
        const gy = (ev.clientY - offsetY) / scale;
        selected = '';
        for (const n of (g.nodes || [])) {
          if (Math.hypot(gx - n.pos.x, gy - n.pos.y) <= radius(n.kind)) {
            selected = n.id;
            break;
          }
        }
        const node = nodeById(selected);
        if (node) {
          panel.innerHTML = '<div class="kind">' + node.kind + '</div>' +
            '<div class="label">' + escapeHtml(node.label) + '</div>';
          panel.style.display = 'block';
        } else {
          panel.style.display = 'none';
        }
        draw();
      });

      function escapeHtml(str) {
        if (!str) return '';
        return str.replace(/&/g, '&amp;').replace(/</g, '&lt;').replace(/>/g, '&gt;');
      }

      window.addEventListener('resize', draw);
      draw();
    })();
  </script>
</body>
</html>`
